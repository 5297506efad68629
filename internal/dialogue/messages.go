package dialogue

// InstructionsMessage walks a new user through creating a Notion integration
// and the database the bot writes into.
const InstructionsMessage = `WebDump Bot
I save the messages you send me straight into your Notion workspace.
To know which account and database to write to, I need two things from you.

Step 1:
Go to https://www.notion.so/my-integrations and create an integration.
I will ask for its "Internal Integration Token" in a moment.

Step 2:
Create a full-page database with exactly these properties: Name, URL, Tags, Image.

Step 3:
Open that page's settings and add a connection to the integration from Step 1,
then copy the database id from the page link.

The steps are explained in more detail here:
https://developers.notion.com/docs/create-a-notion-integration`

// Prompts and notices sent during onboarding.
const (
	PromptToken      = "Send the integration token"
	PromptDatabaseID = "Send the database id"
	PromptPlainText  = "Send me plain text."
	PromptConfirm    = "Please confirm with \"yes\""
	SetupComplete    = "All set! Send me a message and I will add it to your Notion database."
	SetupDiscarded   = "Discarded. Send any message to start the setup again."
)
