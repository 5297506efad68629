package notion

import (
	"github.com/jomei/notionapi"
)

// NewPage describes one page to create. Empty Title/URL/ImageURL and nil Tags
// mean "absent": the corresponding property is left out of the request
// entirely, which Notion interprets as "leave unset".
type NewPage struct {
	Database *notionapi.Database
	Title    string
	URL      string
	ImageURL string
	Tags     []string
}

// CreateRequest maps the page onto Notion's property and block model.
func (p *NewPage) CreateRequest() *notionapi.PageCreateRequest {
	properties := notionapi.Properties{}

	if p.Title != "" {
		properties["Name"] = notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: p.Title}},
			},
		}
	}

	if p.URL != "" {
		properties["URL"] = notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  p.URL,
		}
	}

	if p.ImageURL != "" {
		properties["Image"] = notionapi.FilesProperty{
			Type: notionapi.PropertyTypeFiles,
			Files: []notionapi.File{
				{
					Name:     "Image",
					Type:     notionapi.FileTypeExternal,
					External: &notionapi.FileObject{URL: p.ImageURL},
				},
			},
		}
	}

	if p.Tags != nil {
		properties["Tags"] = notionapi.MultiSelectProperty{
			Type:        notionapi.PropertyTypeMultiSelect,
			MultiSelect: reconcileTags(p.Tags, existingTagOptions(p.Database)),
		}
	}

	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(p.Database.ID),
		},
		Properties: properties,
		Children:   p.childBlocks(),
	}
}

// childBlocks builds the optional page body: an image block when an image was
// uploaded, a bookmark block when a link was extracted. Each is independent.
func (p *NewPage) childBlocks() []notionapi.Block {
	var blocks []notionapi.Block

	if p.ImageURL != "" {
		blocks = append(blocks, &notionapi.ImageBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeImage,
			},
			Image: notionapi.Image{
				Type:     notionapi.FileTypeExternal,
				External: &notionapi.FileObject{URL: p.ImageURL},
			},
		})
	}

	if p.URL != "" {
		blocks = append(blocks, &notionapi.BookmarkBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeBookmark,
			},
			Bookmark: notionapi.Bookmark{URL: p.URL},
		})
	}

	return blocks
}

// existingTagOptions reads the database's current Tags taxonomy. A Tags
// property that is not a multi-select yields no options, so every tag is
// treated as new.
func existingTagOptions(db *notionapi.Database) []notionapi.Option {
	cfg, ok := db.Properties["Tags"].(*notionapi.MultiSelectPropertyConfig)
	if !ok {
		return nil
	}
	return cfg.MultiSelect.Options
}

// reconcileTags maps extracted tag names onto the database's existing options.
// An exact name match reuses the option's id and color so Notion does not fork
// a visually distinct duplicate; a miss carries only the name and lets Notion
// assign a default color on write.
func reconcileTags(tags []string, existing []notionapi.Option) []notionapi.Option {
	options := make([]notionapi.Option, 0, len(tags))
	for _, tag := range tags {
		options = append(options, matchOption(tag, existing))
	}
	return options
}

func matchOption(tag string, existing []notionapi.Option) notionapi.Option {
	for _, opt := range existing {
		if opt.Name == tag {
			return notionapi.Option{ID: opt.ID, Name: opt.Name, Color: opt.Color}
		}
	}
	return notionapi.Option{Name: tag}
}
