package ports

import (
	"context"
	"time"

	"prizedeck/domain/core"
)

// Upload is a workbook and template pair submitted through the web form
type Upload struct {
	ID           core.ID
	WorkbookName string
	Workbook     []byte
	TemplateName string
	Template     []byte
	CreatedAt    time.Time
}

// UploadStore keeps uploads between the form steps
type UploadStore interface {
	Put(ctx context.Context, upload *Upload) (core.ID, error)
	Get(ctx context.Context, id core.ID) (*Upload, error)
}
