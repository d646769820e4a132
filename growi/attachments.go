package growi

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/aoyamat/growi-mcp-server/metrics"
)

func init() {
	// Extensions GROWI pages commonly carry that the platform mime table
	// may not know.
	_ = mime.AddExtensionType(".md", "text/markdown")
	_ = mime.AddExtensionType(".markdown", "text/markdown")
	_ = mime.AddExtensionType(".yml", "application/x-yaml")
	_ = mime.AddExtensionType(".yaml", "application/x-yaml")
	_ = mime.AddExtensionType(".csv", "text/csv")
	_ = mime.AddExtensionType(".log", "text/plain")
}

// UploadAttachment streams a local file to a page as an attachment. The
// local file is checked before any network traffic so a bad path fails
// fast, and the file is never read into memory whole.
func (c *Client) UploadAttachment(ctx context.Context, args UploadAttachmentArgs) (*UploadAttachmentResult, error) {
	ref, err := ParsePageRef(args.PageIDOrPath)
	if err != nil {
		return nil, err
	}
	if err := requireNonEmpty("file_path", args.FilePath); err != nil {
		return nil, err
	}

	info, err := os.Stat(args.FilePath)
	if err != nil {
		return nil, notFound("local file %s not found", args.FilePath)
	}
	if info.IsDir() {
		return nil, invalidArgument("%s is a directory, not a file", args.FilePath)
	}

	pageID, err := c.resolvePageID(ctx, ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(args.FilePath)
	if err != nil {
		return nil, notFound("local file %s could not be opened: %v", args.FilePath, err)
	}
	defer f.Close()

	filename := filepath.Base(args.FilePath)
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var resp struct {
		Attachment attachmentData `json:"attachment"`
	}
	req := c.api.uploadAttachment(pageID)
	if err := c.doUpload(ctx, req, filename, contentType, f, &resp); err != nil {
		return nil, err
	}
	metrics.RecordTransfer("upload", info.Size())
	return &UploadAttachmentResult{Attachment: resp.Attachment.summary()}, nil
}

// AttachmentList lists a page's attachments as an ordered window.
func (c *Client) AttachmentList(ctx context.Context, args AttachmentListArgs) (*AttachmentListResult, error) {
	ref, err := ParsePageRef(args.PathOrID)
	if err != nil {
		return nil, err
	}
	limit, offset, err := normalizePagination(args.Limit, args.Offset)
	if err != nil {
		return nil, err
	}

	pageID, err := c.resolvePageID(ctx, ref)
	if err != nil {
		return nil, err
	}

	// The two dialects answer with different envelopes: a flat
	// "attachments" array or a paginated "paginateResult".
	var resp struct {
		Attachments    []attachmentData `json:"attachments"`
		PaginateResult struct {
			Docs      []attachmentData `json:"docs"`
			TotalDocs int              `json:"totalDocs"`
		} `json:"paginateResult"`
	}
	if err := c.doJSON(ctx, c.api.attachmentList(pageID, limit, offset), &resp); err != nil {
		return nil, err
	}

	docs := resp.Attachments
	total := len(docs)
	if docs == nil {
		docs = resp.PaginateResult.Docs
		total = resp.PaginateResult.TotalDocs
	}

	attachments := make([]AttachmentSummary, 0, len(docs))
	for _, a := range docs {
		attachments = append(attachments, a.summary())
	}
	return &AttachmentListResult{
		Attachments: attachments,
		TotalCount:  total,
		HasMore:     offset+len(attachments) < total,
	}, nil
}

// AttachmentInfo fetches one attachment's metadata by id.
func (c *Client) AttachmentInfo(ctx context.Context, args AttachmentInfoArgs) (*AttachmentInfoResult, error) {
	data, err := c.attachmentData(ctx, args.AttachmentID)
	if err != nil {
		return nil, err
	}
	return &AttachmentInfoResult{Attachment: data.summary()}, nil
}

// DownloadAttachment fetches an attachment's binary content and writes it
// to a local file named after the attachment's original name. The bytes
// stream straight to disk.
func (c *Client) DownloadAttachment(ctx context.Context, args DownloadAttachmentArgs) (*DownloadAttachmentResult, error) {
	data, err := c.attachmentData(ctx, args.AttachmentID)
	if err != nil {
		return nil, err
	}
	if data.FilePathProxied == "" {
		return nil, &Error{Kind: KindBackend, Message: "attachment " + args.AttachmentID + " has no download path"}
	}

	resp, err := c.fetchBinary(ctx, data.FilePathProxied)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if (resp.StatusCode == 401 || resp.StatusCode == 403) && !c.config.HasSessionCookie() {
			metrics.AuthFailures.WithLabelValues("session_cookie_missing").Inc()
			return nil, authErr("attachment download was refused (HTTP %d); this GROWI deployment requires the GROWI_CONNECT_SID session cookie for file access", resp.StatusCode)
		}
		return nil, FromResponse(resp.StatusCode, nil)
	}

	saveDir := args.SaveDir
	if saveDir == "" {
		saveDir = "."
	}
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return nil, invalidArgument("cannot create save directory %s: %v", saveDir, err)
	}

	savedPath := filepath.Join(saveDir, downloadFileName(data))
	out, err := os.Create(savedPath)
	if err != nil {
		return nil, invalidArgument("cannot create %s: %v", savedPath, err)
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(savedPath)
		return nil, transportErr(fmt.Errorf("downloading %s: %w", args.AttachmentID, err))
	}
	if n == 0 && !c.config.HasSessionCookie() {
		os.Remove(savedPath)
		metrics.AuthFailures.WithLabelValues("session_cookie_missing").Inc()
		return nil, authErr("attachment download returned no data; this GROWI deployment may require the GROWI_CONNECT_SID session cookie for file access")
	}

	metrics.RecordTransfer("download", n)
	return &DownloadAttachmentResult{
		SavedPath:    savedPath,
		OriginalName: data.OriginalName,
		FileFormat:   data.FileFormat,
		Size:         n,
	}, nil
}

// RemoveAttachment deletes an attachment by id.
func (c *Client) RemoveAttachment(ctx context.Context, args RemoveAttachmentArgs) (*RemoveAttachmentResult, error) {
	if err := requireNonEmpty("attachment_id", args.AttachmentID); err != nil {
		return nil, err
	}
	if err := c.doJSON(ctx, c.api.removeAttachment(args.AttachmentID), nil); err != nil {
		return nil, err
	}
	return &RemoveAttachmentResult{Removed: true, AttachmentID: args.AttachmentID}, nil
}

// attachmentData fetches the wire attachment metadata by id.
func (c *Client) attachmentData(ctx context.Context, attachmentID string) (attachmentData, error) {
	if err := requireNonEmpty("attachment_id", attachmentID); err != nil {
		return attachmentData{}, err
	}
	req, err := c.api.attachmentInfo(attachmentID)
	if err != nil {
		return attachmentData{}, err
	}

	var resp struct {
		Attachment attachmentData `json:"attachment"`
	}
	if err := c.doJSON(ctx, req, &resp); err != nil {
		return attachmentData{}, err
	}
	if resp.Attachment.ID == "" {
		return attachmentData{}, notFound("attachment %s not found", attachmentID)
	}
	return resp.Attachment, nil
}

// downloadFileName picks the local file name for a downloaded attachment,
// stripped of any path components the backend might send.
func downloadFileName(data attachmentData) string {
	name := data.OriginalName
	if name == "" {
		name = data.FileName
	}
	if name == "" {
		name = data.ID
	}
	return filepath.Base(name)
}
