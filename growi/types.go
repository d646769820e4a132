package growi

import "encoding/json"

// Constants for pagination windows
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ========== Page Types ==========

// PageSummary is the shaped page representation returned by every page
// operation, regardless of dialect.
type PageSummary struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	RevisionID string `json:"revision_id,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// PageListArgs contains parameters for listing pages under a path
type PageListArgs struct {
	PathOrID string `json:"path_or_id" jsonschema:"required" jsonschema_description:"Page path (starts with /) or opaque page id"`
	Limit    int    `json:"limit,omitempty" jsonschema_description:"Maximum number of pages per request (default 10, max 100)"`
	Offset   int    `json:"offset,omitempty" jsonschema_description:"Number of leading results to skip"`
}

// PageListResult is an ordered window of page summaries
type PageListResult struct {
	Pages      []PageSummary `json:"pages"`
	TotalCount int           `json:"total_count"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
	HasMore    bool          `json:"has_more"`
}

// ReadPageArgs contains parameters for reading one page
type ReadPageArgs struct {
	PathOrID string `json:"path_or_id" jsonschema:"required" jsonschema_description:"Page path (starts with /) or opaque page id"`
}

// ReadPageResult is the full page body plus metadata
type ReadPageResult struct {
	Page PageSummary `json:"page"`
	Body string      `json:"body"`
}

// CreatePageArgs contains parameters for creating a page
type CreatePageArgs struct {
	Path string `json:"path" jsonschema:"required" jsonschema_description:"Path for the new page (must start with /)"`
	Body string `json:"body,omitempty" jsonschema_description:"Markdown body; omit to create an empty page"`
}

// CreatePageResult is the created page summary
type CreatePageResult struct {
	Page PageSummary `json:"page"`
}

// UpdatePageArgs contains parameters for replacing a page body
type UpdatePageArgs struct {
	PathOrID string `json:"path_or_id" jsonschema:"required" jsonschema_description:"Page path (starts with /) or opaque page id"`
	Body     string `json:"body" jsonschema:"required" jsonschema_description:"New page body (non-empty)"`
}

// UpdatePageResult is the updated page summary
type UpdatePageResult struct {
	Page PageSummary `json:"page"`
}

// RenamePageArgs contains parameters for moving a page
type RenamePageArgs struct {
	PathOrID string `json:"path_or_id" jsonschema:"required" jsonschema_description:"Current page path (starts with /) or opaque page id"`
	NewPath  string `json:"new_path" jsonschema:"required" jsonschema_description:"Destination path (must start with /)"`
}

// RenamePageResult is the renamed page summary
type RenamePageResult struct {
	Page PageSummary `json:"page"`
}

// RemovePageArgs contains parameters for deleting a page
type RemovePageArgs struct {
	PathOrID    string `json:"path_or_id" jsonschema:"required" jsonschema_description:"Page path (starts with /) or opaque page id"`
	Recursively bool   `json:"recursively,omitempty" jsonschema_description:"Also delete descendant pages (default false; deletion fails if the page has children)"`
}

// RemovePageResult confirms a deletion
type RemovePageResult struct {
	Removed bool   `json:"removed"`
	Path    string `json:"path,omitempty"`
}

// ========== Search Types ==========

// SearchPagesArgs contains parameters for full-text search
type SearchPagesArgs struct {
	Query  string `json:"query" jsonschema:"required" jsonschema_description:"Search query text"`
	Path   string `json:"path,omitempty" jsonschema_description:"Restrict the search to this subtree (default /)"`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Maximum number of hits per request (default 10, max 100)"`
	Offset int    `json:"offset,omitempty" jsonschema_description:"Number of leading hits to skip"`
}

// SearchHit is one search match
type SearchHit struct {
	Page  PageSummary `json:"page"`
	Score float64     `json:"score,omitempty"`
}

// SearchPagesResult is an ordered window of search hits
type SearchPagesResult struct {
	Hits      []SearchHit `json:"hits"`
	TotalHits int         `json:"total_hits"`
	HasMore   bool        `json:"has_more"`
}

// ========== User Types ==========

// UserNamesArgs contains parameters for username lookup
type UserNamesArgs struct {
	Query  string `json:"query" jsonschema:"required" jsonschema_description:"Username search query"`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Maximum number of usernames per request (default 10, max 100)"`
	Offset int    `json:"offset,omitempty" jsonschema_description:"Number of leading results to skip"`
}

// UserNamesResult is an ordered sequence of usernames
type UserNamesResult struct {
	Usernames  []string `json:"usernames"`
	TotalCount int      `json:"total_count"`
}

// RegisterUserArgs contains parameters for registering a wiki user
type RegisterUserArgs struct {
	Name     string `json:"name" jsonschema:"required" jsonschema_description:"Display name for the user"`
	Username string `json:"username" jsonschema:"required" jsonschema_description:"Login name for the user"`
	Email    string `json:"email" jsonschema:"required" jsonschema_description:"Email address for the user"`
	Password string `json:"password" jsonschema:"required" jsonschema_description:"Password (at least 8 characters)"`
}

// RegisterUserResult confirms a registration
type RegisterUserResult struct {
	Registered bool   `json:"registered"`
	Username   string `json:"username"`
}

// ========== Attachment Types ==========

// AttachmentSummary is the shaped attachment metadata
type AttachmentSummary struct {
	ID              string `json:"id"`
	FileName        string `json:"file_name,omitempty"`
	OriginalName    string `json:"original_name,omitempty"`
	FileFormat      string `json:"file_format,omitempty"`
	FileSize        int64  `json:"file_size,omitempty"`
	FilePathProxied string `json:"file_path_proxied,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// UploadAttachmentArgs contains parameters for uploading a local file
type UploadAttachmentArgs struct {
	PageIDOrPath string `json:"page_id_or_path" jsonschema:"required" jsonschema_description:"Target page path (starts with /) or opaque page id"`
	FilePath     string `json:"file_path" jsonschema:"required" jsonschema_description:"Local path of the file to upload"`
}

// UploadAttachmentResult is the created attachment summary
type UploadAttachmentResult struct {
	Attachment AttachmentSummary `json:"attachment"`
}

// AttachmentListArgs contains parameters for listing a page's attachments
type AttachmentListArgs struct {
	PathOrID string `json:"path_or_id" jsonschema:"required" jsonschema_description:"Page path (starts with /) or opaque page id"`
	Limit    int    `json:"limit,omitempty" jsonschema_description:"Maximum number of attachments per request (default 10, max 100)"`
	Offset   int    `json:"offset,omitempty" jsonschema_description:"Number of leading results to skip"`
}

// AttachmentListResult is an ordered window of attachment summaries
type AttachmentListResult struct {
	Attachments []AttachmentSummary `json:"attachments"`
	TotalCount  int                 `json:"total_count"`
	HasMore     bool                `json:"has_more"`
}

// AttachmentInfoArgs contains parameters for one attachment's metadata
type AttachmentInfoArgs struct {
	AttachmentID string `json:"attachment_id" jsonschema:"required" jsonschema_description:"Opaque attachment id"`
}

// AttachmentInfoResult is the attachment metadata
type AttachmentInfoResult struct {
	Attachment AttachmentSummary `json:"attachment"`
}

// DownloadAttachmentArgs contains parameters for downloading an attachment
type DownloadAttachmentArgs struct {
	AttachmentID string `json:"attachment_id" jsonschema:"required" jsonschema_description:"Opaque attachment id"`
	SaveDir      string `json:"save_dir,omitempty" jsonschema_description:"Local directory to save into (default: process working directory); an existing file with the same name is overwritten"`
}

// DownloadAttachmentResult reports where the file was written
type DownloadAttachmentResult struct {
	SavedPath    string `json:"saved_path"`
	OriginalName string `json:"original_name"`
	FileFormat   string `json:"file_format,omitempty"`
	Size         int64  `json:"size"`
}

// RemoveAttachmentArgs contains parameters for deleting an attachment
type RemoveAttachmentArgs struct {
	AttachmentID string `json:"attachment_id" jsonschema:"required" jsonschema_description:"Opaque attachment id"`
}

// RemoveAttachmentResult confirms a deletion
type RemoveAttachmentResult struct {
	Removed      bool   `json:"removed"`
	AttachmentID string `json:"attachment_id"`
}

// ========== Wire Types ==========

// pageData is the page object as GROWI sends it. Both dialects use the
// same field names; only the envelope around it differs.
type pageData struct {
	ID         string      `json:"_id"`
	Path       string      `json:"path"`
	Revision   revisionRef `json:"revision"`
	RevisionID string      `json:"revisionId"`
	Status     string      `json:"status"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
}

// summary shapes the wire page into the tool-facing form.
func (p pageData) summary() PageSummary {
	return PageSummary{
		ID:         p.ID,
		Path:       p.Path,
		RevisionID: p.revisionID(),
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// revisionID resolves the revision id from whichever field the backend
// populated.
func (p pageData) revisionID() string {
	if p.Revision.ID != "" {
		return p.Revision.ID
	}
	return p.RevisionID
}

// revisionRef handles the "revision" field being either a bare id string
// or an embedded revision object.
type revisionRef struct {
	ID   string
	Body string
}

func (r *revisionRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var obj struct {
		ID   string `json:"_id"`
		Body string `json:"body"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	r.Body = obj.Body
	return nil
}

// searchDoc is one search result element. Depending on the search backend
// the page fields appear either at the top level or under "_source".
type searchDoc struct {
	pageData
	Source *pageData `json:"_source"`
	Score  float64   `json:"_score"`
}

func (d searchDoc) page() pageData {
	if d.Source != nil {
		return *d.Source
	}
	return d.pageData
}

// attachmentData is the attachment object as GROWI sends it.
type attachmentData struct {
	ID              string `json:"_id"`
	FileName        string `json:"fileName"`
	OriginalName    string `json:"originalName"`
	FileFormat      string `json:"fileFormat"`
	FileSize        int64  `json:"fileSize"`
	FilePathProxied string `json:"filePathProxied"`
	CreatedAt       string `json:"createdAt"`
}

func (a attachmentData) summary() AttachmentSummary {
	return AttachmentSummary{
		ID:              a.ID,
		FileName:        a.FileName,
		OriginalName:    a.OriginalName,
		FileFormat:      a.FileFormat,
		FileSize:        a.FileSize,
		FilePathProxied: a.FilePathProxied,
		CreatedAt:       a.CreatedAt,
	}
}
