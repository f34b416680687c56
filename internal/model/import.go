package model

import "time"

// DocketMeta represents docket attributes from the regulations.gov API
type DocketMeta struct {
	ID         string
	Title      string
	AgencyID   string
	DocketType string
	Abstract   string
	ModifyDate time.Time
}

// DocumentMeta represents a document filed in a docket
type DocumentMeta struct {
	ID             string
	DocumentType   string
	PostedDate     time.Time
	OpenForComment bool
}

// CommentMeta represents a public comment with its attachment count
type CommentMeta struct {
	ID              string
	DocketID        string
	Body            string
	AttachmentCount int
	PostedDate      time.Time
}

// Comment is the stored form of a public comment
type Comment struct {
	ID             string
	DocketID       string
	Body           string
	HasAttachments bool
	PostedDate     time.Time
}
