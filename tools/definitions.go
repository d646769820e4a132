package tools

// AllTools contains all tool specifications for the GROWI MCP server.
// Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// PAGE TOOLS
	// ==========================================================================
	{
		Name:     "growi_get_page_list",
		Method:   "GetPageList",
		Title:    "List Pages",
		Category: "pages",
		Description: `List the pages under a wiki path as a paginated window.

USE WHEN: User asks "what pages are under /docs", "show the page tree", "list everything in the team space".

NOT FOR: Reading a page's content (use growi_read_page). Not for finding pages by topic (use growi_search_pages).

PARAMETERS:
- path_or_id: Parent page path starting with "/" or a page id (required)
- limit: Max pages per call (default 10, max 100)
- offset: Results to skip for pagination

RETURNS: Page summaries in backend order, the total count, and whether more remain.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "growi_read_page",
		Method:   "ReadPage",
		Title:    "Read Page",
		Category: "pages",
		Description: `Retrieve one wiki page with its full markdown body.

USE WHEN: User says "show me /docs/setup", "what does the onboarding page say", "read page X".

NOT FOR: Listing child pages (use growi_get_page_list). Not for finding which page mentions something (use growi_search_pages).

PARAMETERS:
- path_or_id: Page path starting with "/" or a page id (required)

RETURNS: Page metadata (id, path, revision) and the full markdown body.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "growi_create_page",
		Method:   "CreatePage",
		Title:    "Create Page",
		Category: "pages",
		Description: `Create a new wiki page at a path that does not exist yet.

USE WHEN: User says "create a page at /notes/today", "add a new page for the meeting notes".

NOT FOR: Changing an existing page (use growi_update_page). Creating at an occupied path fails with a conflict.

PARAMETERS:
- path: New page path starting with "/" (required)
- body: Markdown content; omit for an empty page

RETURNS: The created page's id, path and revision.`,
		OpenWorld: true,
	},
	{
		Name:     "growi_update_page",
		Method:   "UpdatePage",
		Title:    "Update Page",
		Category: "pages",
		Description: `Replace the entire body of an existing wiki page.

USE WHEN: User says "update /docs/setup with this content", "rewrite the FAQ page".

NOT FOR: Creating a page that doesn't exist (use growi_create_page). The whole body is replaced, not appended.

PARAMETERS:
- path_or_id: Page path starting with "/" or a page id (required)
- body: New markdown content, non-empty (required)

RETURNS: The updated page's id, path and new revision.`,
		Destructive: true,
		OpenWorld:   true,
	},
	{
		Name:     "growi_rename_page",
		Method:   "RenamePage",
		Title:    "Rename Page",
		Category: "pages",
		Description: `Move a wiki page (and its descendants) to a new path. Requires API v3.

USE WHEN: User says "move /old/page to /new/page", "rename the project page".

NOT FOR: Changing page content (use growi_update_page).

PARAMETERS:
- path_or_id: Current page path starting with "/" or a page id (required)
- new_path: Destination path starting with "/" (required)

RETURNS: The page at its new path.`,
		Destructive: true,
		OpenWorld:   true,
	},
	{
		Name:     "growi_remove_page",
		Method:   "RemovePage",
		Title:    "Remove Page",
		Category: "pages",
		Description: `Delete a wiki page.

USE WHEN: User says "delete /scratch/tmp", "remove the obsolete page".

NOT FOR: Clearing a page's content while keeping it (use growi_update_page). Deleting a page with children fails unless recursively is set.

PARAMETERS:
- path_or_id: Page path starting with "/" or a page id (required)
- recursively: Also delete descendant pages (default false)

RETURNS: Confirmation with the removed page's path.`,
		Destructive: true,
		OpenWorld:   true,
	},

	// ==========================================================================
	// SEARCH TOOLS
	// ==========================================================================
	{
		Name:     "growi_search_pages",
		Method:   "SearchPages",
		Title:    "Search Pages",
		Category: "search",
		Description: `Full-text search across the wiki, optionally restricted to a subtree.

USE WHEN: User asks "find pages about X", "where is X documented", "search for X under /docs".

NOT FOR: Listing pages by location (use growi_get_page_list). Not for reading a known page (use growi_read_page).

PARAMETERS:
- query: Search text (required)
- path: Subtree to search under (default "/", the whole wiki)
- limit: Max hits per call (default 10, max 100)
- offset: Hits to skip for pagination

RETURNS: Matching pages in relevance order with scores, the total hit count, and whether more remain.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// USER TOOLS
	// ==========================================================================
	{
		Name:     "growi_get_user_names",
		Method:   "GetUserNames",
		Title:    "Look Up Usernames",
		Category: "users",
		Description: `Look up wiki usernames matching a query. Requires API v3.

USE WHEN: User asks "who has a username like al", "find the username for Alice".

NOT FOR: Creating users (use growi_register_user). Not for searching page content.

PARAMETERS:
- query: Username search text (required)
- limit: Max results per call (default 10, max 100)
- offset: Results to skip

RETURNS: Matching usernames and the total count.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "growi_register_user",
		Method:   "RegisterUser",
		Title:    "Register User",
		Category: "users",
		Description: `Create a new wiki user account.

USE WHEN: User says "register a new account for X", "create a wiki user".

NOT FOR: Looking up existing users (use growi_get_user_names).

PARAMETERS:
- name: Display name (required)
- username: Login name (required)
- email: Email address (required)
- password: At least 8 characters (required)

RETURNS: Confirmation with the registered username.`,
		OpenWorld: true,
	},

	// ==========================================================================
	// ATTACHMENT TOOLS
	// ==========================================================================
	{
		Name:     "growi_upload_attachment",
		Method:   "UploadAttachment",
		Title:    "Upload Attachment",
		Category: "attachments",
		Description: `Upload a local file to a wiki page as an attachment.

USE WHEN: User says "attach report.pdf to /docs/q3", "upload this file to the page".

NOT FOR: Downloading files (use growi_download_attachment). The local file must exist.

PARAMETERS:
- page_id_or_path: Target page path starting with "/" or a page id (required)
- file_path: Local file to upload (required)

RETURNS: The created attachment's id, names and size.`,
		OpenWorld: true,
	},
	{
		Name:     "growi_attachment_list",
		Method:   "AttachmentList",
		Title:    "List Attachments",
		Category: "attachments",
		Description: `List the attachments on a wiki page as a paginated window.

USE WHEN: User asks "what files are attached to /docs/q3", "list the page's uploads".

NOT FOR: One attachment's details (use growi_get_attachment_info).

PARAMETERS:
- path_or_id: Page path starting with "/" or a page id (required)
- limit: Max attachments per call (default 10, max 100)
- offset: Results to skip

RETURNS: Attachment summaries, the total count, and whether more remain.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "growi_get_attachment_info",
		Method:   "AttachmentInfo",
		Title:    "Get Attachment Info",
		Category: "attachments",
		Description: `Fetch one attachment's metadata by id. Requires API v3.

USE WHEN: User asks "how big is attachment X", "what type is that file".

NOT FOR: Fetching the file content (use growi_download_attachment). Not for listing a page's attachments (use growi_attachment_list).

PARAMETERS:
- attachment_id: Attachment id from growi_attachment_list (required)

RETURNS: File names, format, size and download path.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "growi_download_attachment",
		Method:   "DownloadAttachment",
		Title:    "Download Attachment",
		Category: "attachments",
		Description: `Download an attachment's binary content to a local file. Requires API v3.

USE WHEN: User says "download attachment X", "save that file locally".

NOT FOR: Just the metadata (use growi_get_attachment_info).

PARAMETERS:
- attachment_id: Attachment id from growi_attachment_list (required)
- save_dir: Local directory to save into (default: working directory); an existing file with the same name is overwritten

RETURNS: The saved file path and its size.

NOTE: Some GROWI deployments serve files only to browser sessions; those need the GROWI_CONNECT_SID environment variable set.`,
		ReadOnly:  true,
		OpenWorld: true,
	},
	{
		Name:     "growi_remove_attachment",
		Method:   "RemoveAttachment",
		Title:    "Remove Attachment",
		Category: "attachments",
		Description: `Delete an attachment from the wiki.

USE WHEN: User says "delete attachment X", "remove the outdated file from the page".

NOT FOR: Removing pages (use growi_remove_page).

PARAMETERS:
- attachment_id: Attachment id from growi_attachment_list (required)

RETURNS: Confirmation with the removed attachment's id.`,
		Destructive: true,
		OpenWorld:   true,
	},
}
