package models

import (
	"fmt"
	"time"
)

type FileStatus string

const (
	FileStatusAdded    FileStatus = "added"
	FileStatusModified FileStatus = "modified"
	FileStatusRemoved  FileStatus = "removed"
	FileStatusRenamed  FileStatus = "renamed"
)

type (
	// PullRequestRef identifies a pull request on GitHub.
	PullRequestRef struct {
		Owner  string `json:"owner" yaml:"owner"`
		Repo   string `json:"repo" yaml:"repo"`
		Number int    `json:"number" yaml:"number"`
	}

	// PRDetails is the metadata of a pull request as reported by the host.
	PRDetails struct {
		Number       int       `json:"number" yaml:"number"`
		Title        string    `json:"title" yaml:"title"`
		Body         *string   `json:"body,omitempty" yaml:"body,omitempty"`
		State        string    `json:"state" yaml:"state"`
		Merged       bool      `json:"merged" yaml:"merged"`
		Mergeable    *bool     `json:"mergeable,omitempty" yaml:"mergeable,omitempty"`
		Additions    int       `json:"additions" yaml:"additions"`
		Deletions    int       `json:"deletions" yaml:"deletions"`
		ChangedFiles int       `json:"changed_files" yaml:"changed_files"`
		Commits      int       `json:"commits" yaml:"commits"`
		CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
		UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
		AuthorLogin  string    `json:"author_login" yaml:"author_login"`
		AuthorID     int64     `json:"author_id" yaml:"author_id"`
		HeadRef      string    `json:"head_ref" yaml:"head_ref"`
		HeadSHA      string    `json:"head_sha" yaml:"head_sha"`
	}

	// FileChange is one entry of the changed-file list of a pull request.
	FileChange struct {
		Filename  string     `json:"filename" yaml:"filename"`
		Status    FileStatus `json:"status" yaml:"status"`
		Additions int        `json:"additions" yaml:"additions"`
		Deletions int        `json:"deletions" yaml:"deletions"`
		Changes   int        `json:"changes" yaml:"changes"`
		Patch     *string    `json:"patch,omitempty" yaml:"patch,omitempty"`
	}

	// CICheck is a check run attached to the head commit. A nil Conclusion
	// means the run is still pending.
	CICheck struct {
		Name        string     `json:"name" yaml:"name"`
		Status      string     `json:"status" yaml:"status"`
		Conclusion  *string    `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`
		StartedAt   *time.Time `json:"started_at,omitempty" yaml:"started_at,omitempty"`
		CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	}

	// RateLimit is the core API quota of the configured credentials.
	RateLimit struct {
		Limit     int       `json:"limit" yaml:"limit"`
		Remaining int       `json:"remaining" yaml:"remaining"`
		Reset     time.Time `json:"reset" yaml:"reset"`
	}
)

func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// Valid reports whether owner and repo are set and the number is positive.
func (r PullRequestRef) Valid() bool {
	return r.Owner != "" && r.Repo != "" && r.Number > 0
}

// URL renders the canonical web URL of the pull request.
func (r PullRequestRef) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", r.Owner, r.Repo, r.Number)
}

func (d PRDetails) BodyText() string {
	if d.Body == nil {
		return ""
	}
	return *d.Body
}

func (f FileChange) PatchText() string {
	if f.Patch == nil {
		return ""
	}
	return *f.Patch
}

func (c CICheck) Succeeded() bool {
	return c.Conclusion != nil && *c.Conclusion == "success"
}

// ConclusionText returns the conclusion or "pending" when the run has none yet.
func (c CICheck) ConclusionText() string {
	if c.Conclusion == nil {
		return "pending"
	}
	return *c.Conclusion
}
