package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/avoronov/webdump-bot/internal/dialogue"
	"github.com/avoronov/webdump-bot/internal/domain"
	"github.com/avoronov/webdump-bot/internal/notion"
	"github.com/jomei/notionapi"
)

type fakeRepo struct {
	mu     sync.Mutex
	creds  map[string]*domain.Credential
	getErr error
	putErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{creds: make(map[string]*domain.Credential)}
}

func (f *fakeRepo) GetCredential(_ context.Context, userID string) (*domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.creds[userID], nil
}

func (f *fakeRepo) PutCredential(_ context.Context, cred *domain.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.creds[cred.UserID] = cred
	return nil
}

func (f *fakeRepo) DeleteCredential(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.creds, userID)
	return nil
}

func (f *fakeRepo) Ping(context.Context) error { return nil }
func (f *fakeRepo) Close() error               { return nil }

type sentReply struct {
	chatID    int64
	messageID int
	text      string
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []string
	replies []sentReply
}

func (f *fakeSender) Send(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) Reply(chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, sentReply{chatID: chatID, messageID: messageID, text: text})
	return nil
}

func (f *fakeSender) allText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := append([]string{}, f.sent...)
	for _, r := range f.replies {
		all = append(all, r.text)
	}
	return strings.Join(all, "\n---\n")
}

type fakeFiles struct {
	err error
}

func (f *fakeFiles) FileURL(fileID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://files.example/" + fileID, nil
}

type fakeUploader struct {
	err     error
	sources []string
}

func (f *fakeUploader) Upload(_ context.Context, sourceURL string) (string, error) {
	f.sources = append(f.sources, sourceURL)
	if f.err != nil {
		return "", f.err
	}
	return "https://img.example/uploaded.png", nil
}

type fakeNotion struct {
	db        *notionapi.Database
	dbErr     error
	created   []*notion.NewPage
	createErr error
	calls     int
}

func (f *fakeNotion) DatabaseByID(context.Context, string) (*notionapi.Database, error) {
	f.calls++
	if f.dbErr != nil {
		return nil, f.dbErr
	}
	return f.db, nil
}

func (f *fakeNotion) CreatePage(_ context.Context, page *notion.NewPage) (*notionapi.Page, error) {
	f.created = append(f.created, page)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &notionapi.Page{ID: notionapi.ObjectID("aaaa-bbbb-cccc")}, nil
}

func validDatabase() *notionapi.Database {
	return &notionapi.Database{
		ID: notionapi.ObjectID("db-1"),
		Properties: notionapi.PropertyConfigs{
			"Name":  &notionapi.TitlePropertyConfig{},
			"Image": &notionapi.FilesPropertyConfig{},
			"URL":   &notionapi.URLPropertyConfig{},
			"Tags":  &notionapi.MultiSelectPropertyConfig{},
		},
	}
}

func newTestRouter(repo *fakeRepo, nc *fakeNotion, up *fakeUploader) (*Router, *fakeSender) {
	sender := &fakeSender{}
	r := NewRouter(repo, dialogue.NewMemoryStore(), sender, &fakeFiles{}, up, func(string) notion.API {
		return nc
	})
	return r, sender
}

func TestUncredentialedMessageNeverReachesPipeline(t *testing.T) {
	t.Parallel()

	nc := &fakeNotion{db: validDatabase()}
	router, sender := newTestRouter(newFakeRepo(), nc, &fakeUploader{})

	router.HandleUpdate(context.Background(), Incoming{ChatID: 1, Text: "save this https://example.com"})

	if nc.calls != 0 || len(nc.created) != 0 {
		t.Fatal("message from user without credential must not reach Notion")
	}
	if !strings.Contains(sender.allText(), dialogue.PromptToken) {
		t.Errorf("expected an onboarding prompt, got: %s", sender.allText())
	}
}

func TestOnboardingEndToEndPersistsVerbatim(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	router, _ := newTestRouter(repo, &fakeNotion{db: validDatabase()}, &fakeUploader{})
	ctx := context.Background()

	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "hello"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "tok-XYZ"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "db-123"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "YES do it"})

	cred := repo.creds["9"]
	if cred == nil {
		t.Fatal("expected credential to be persisted after confirmation")
	}
	if cred.IntegrationToken != "tok-XYZ" || cred.DatabaseID != "db-123" {
		t.Errorf("credential not captured verbatim: %+v", cred)
	}
}

func TestOnboardingRejectionPersistsNothing(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	router, _ := newTestRouter(repo, &fakeNotion{db: validDatabase()}, &fakeUploader{})
	ctx := context.Background()

	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "hello"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "tok"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "db"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "nope"})

	if repo.creds["9"] != nil {
		t.Fatal("rejection must not persist a credential")
	}

	// The chat restarted: next message triggers instructions again.
	sender2 := &fakeSender{}
	router.sender = sender2
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "anything"})
	if !strings.Contains(sender2.allText(), dialogue.PromptToken) {
		t.Errorf("expected restart at instructions, got: %s", sender2.allText())
	}
}

func TestPipelineCreatesPageAndRepliesWithLink(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.creds["1"] = &domain.Credential{UserID: "1", IntegrationToken: "t", DatabaseID: "db-1"}
	nc := &fakeNotion{db: validDatabase()}
	router, sender := newTestRouter(repo, nc, &fakeUploader{})

	router.HandleUpdate(context.Background(), Incoming{
		ChatID:    1,
		MessageID: 77,
		Text:      "Weekend trip\nhttps://example.com/a #beach @vacay",
	})

	if len(nc.created) != 1 {
		t.Fatalf("expected one page creation, got %d", len(nc.created))
	}
	page := nc.created[0]
	if page.Title != "Weekend trip" || page.URL != "https://example.com/a" {
		t.Errorf("unexpected page fields: %+v", page)
	}
	if len(page.Tags) != 2 || page.Tags[0] != "beach" || page.Tags[1] != "vacay" {
		t.Errorf("unexpected tags: %v", page.Tags)
	}

	if len(sender.replies) != 1 {
		t.Fatalf("expected the confirmation as a reply, got %d replies", len(sender.replies))
	}
	reply := sender.replies[0]
	if reply.messageID != 77 {
		t.Errorf("reply quotes message %d, want 77", reply.messageID)
	}
	if reply.text != "Created page https://notion.so/aaaabbbbcccc" {
		t.Errorf("unexpected confirmation: %q", reply.text)
	}
}

func TestPipelineAppendsCaptionWithoutSeparator(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.creds["1"] = &domain.Credential{UserID: "1", IntegrationToken: "t", DatabaseID: "db-1"}
	nc := &fakeNotion{db: validDatabase()}
	router, _ := newTestRouter(repo, nc, &fakeUploader{})

	router.HandleUpdate(context.Background(), Incoming{
		ChatID:  1,
		Text:    "Weekend",
		Caption: "trip #beach",
	})

	if len(nc.created) != 1 {
		t.Fatalf("expected one page creation, got %d", len(nc.created))
	}
	// Text and caption are joined with no separator in between.
	if got := nc.created[0].Title; got != "Weekendtrip #beach" {
		t.Errorf("title = %q, want literal concatenation", got)
	}
}

func TestImageUploadFailureOmitsImage(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.creds["1"] = &domain.Credential{UserID: "1", IntegrationToken: "t", DatabaseID: "db-1"}
	nc := &fakeNotion{db: validDatabase()}
	up := &fakeUploader{err: errors.New("host down")}
	router, sender := newTestRouter(repo, nc, up)

	router.HandleUpdate(context.Background(), Incoming{
		ChatID:       1,
		Text:         "a photo",
		PhotoFileIDs: []string{"small", "large"},
	})

	if len(nc.created) != 1 {
		t.Fatalf("upload failure must not abort page creation, got %d creations", len(nc.created))
	}
	if nc.created[0].ImageURL != "" {
		t.Errorf("ImageURL = %q, want absent after failed upload", nc.created[0].ImageURL)
	}
	if len(sender.replies) != 1 {
		t.Errorf("expected the page confirmation despite upload failure")
	}
}

func TestImageUploadUsesHighestResolutionPhoto(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.creds["1"] = &domain.Credential{UserID: "1", IntegrationToken: "t", DatabaseID: "db-1"}
	nc := &fakeNotion{db: validDatabase()}
	up := &fakeUploader{}
	router, _ := newTestRouter(repo, nc, up)

	router.HandleUpdate(context.Background(), Incoming{
		ChatID:       1,
		Text:         "a photo",
		PhotoFileIDs: []string{"small", "large"},
	})

	if len(up.sources) != 1 || up.sources[0] != "https://files.example/large" {
		t.Errorf("uploaded sources = %v, want the last photo variant only", up.sources)
	}
	if nc.created[0].ImageURL != "https://img.example/uploaded.png" {
		t.Errorf("ImageURL = %q, want the uploaded URL", nc.created[0].ImageURL)
	}
}

func TestSchemaMismatchAbortsWithFieldList(t *testing.T) {
	t.Parallel()

	db := validDatabase()
	delete(db.Properties, "Tags")

	repo := newFakeRepo()
	repo.creds["1"] = &domain.Credential{UserID: "1", IntegrationToken: "t", DatabaseID: "db-1"}
	nc := &fakeNotion{db: db}
	router, sender := newTestRouter(repo, nc, &fakeUploader{})

	router.HandleUpdate(context.Background(), Incoming{ChatID: 1, Text: "hello"})

	if len(nc.created) != 0 {
		t.Fatal("schema mismatch must abort before page creation")
	}
	out := sender.allText()
	for _, name := range []string{"Image", "Name", "URL"} {
		if !strings.Contains(out, name) {
			t.Errorf("schema error must list the actual fields, missing %q in: %s", name, out)
		}
	}
}

func TestCreatePageFailureSurfacesGenericError(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.creds["1"] = &domain.Credential{UserID: "1", IntegrationToken: "t", DatabaseID: "db-1"}
	nc := &fakeNotion{db: validDatabase(), createErr: errors.New("api down")}
	router, sender := newTestRouter(repo, nc, &fakeUploader{})

	router.HandleUpdate(context.Background(), Incoming{ChatID: 1, Text: "hello"})

	if !strings.Contains(sender.allText(), MsgGenericFailure) {
		t.Errorf("expected generic failure reply, got: %s", sender.allText())
	}
}

func TestResetCommandDeletesCredentialAndState(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.creds["1"] = &domain.Credential{UserID: "1", IntegrationToken: "t", DatabaseID: "db-1"}
	nc := &fakeNotion{db: validDatabase()}
	router, sender := newTestRouter(repo, nc, &fakeUploader{})

	router.HandleUpdate(context.Background(), Incoming{ChatID: 1, Command: "reset"})

	if repo.creds["1"] != nil {
		t.Fatal("reset must delete the stored credential")
	}
	if !strings.Contains(sender.allText(), resetMessage) {
		t.Errorf("expected reset notice, got: %s", sender.allText())
	}

	// The next message routes back into onboarding, not the pipeline.
	router.HandleUpdate(context.Background(), Incoming{ChatID: 1, Text: "hello again"})
	if nc.calls != 0 {
		t.Error("after reset, messages must route to onboarding")
	}
}

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	router, sender := newTestRouter(newFakeRepo(), &fakeNotion{}, &fakeUploader{})
	router.HandleUpdate(context.Background(), Incoming{ChatID: 1, Command: "help"})

	if !strings.Contains(sender.allText(), "/reset") {
		t.Errorf("help must describe supported commands, got: %s", sender.allText())
	}
}

func TestPersistFailureKeepsConfirmationState(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	router, _ := newTestRouter(repo, &fakeNotion{db: validDatabase()}, &fakeUploader{})
	ctx := context.Background()

	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "hello"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "tok"})
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "db"})

	repo.putErr = errors.New("disk full")
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "yes"})
	if repo.creds["9"] != nil {
		t.Fatal("failed persist must not leave a credential behind")
	}

	// Storage recovers; the user can simply confirm again.
	repo.putErr = nil
	router.HandleUpdate(ctx, Incoming{ChatID: 9, Text: "yes"})
	if repo.creds["9"] == nil {
		t.Fatal("expected confirmation to succeed after storage recovered")
	}
}
