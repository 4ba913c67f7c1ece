package dto

type AddItemRequest struct {
	AfterIndex int `json:"after_index"`
}

type DeleteItemRequest struct {
	Index   int  `json:"index"`
	Confirm bool `json:"confirm"`
}

// DeleteItemResponse is two-phase: without confirm the service mutates
// nothing and asks the client to confirm; with confirm it returns the
// updated session.
type DeleteItemResponse struct {
	ConfirmationRequired bool             `json:"confirmation_required"`
	Session              *SessionResponse `json:"session,omitempty"`
}

type RenameItemRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddTagRequest carries the raw tag input; blank input is a no-op that
// still clears the field, so it is not rejected up front.
type AddTagRequest struct {
	Name string `json:"name"`
}

type SetItemTagsRequest struct {
	Tags []string `json:"tags"`
}

type SetTagFilterRequest struct {
	Selected []string `json:"selected"`
}

type SaveImageResponse struct {
	Url string `json:"url"`
}

type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

type ItemView struct {
	Id           int      `json:"id"`
	Name         string   `json:"name"`
	FrontImage   string   `json:"front_image,omitempty"`
	BackImage    string   `json:"back_image,omitempty"`
	Transcript   string   `json:"transcript"`
	TagSelection []string `json:"tag_selection"`
	CanDelete    bool     `json:"can_delete"`
}

// SessionResponse is the full render of a user's session, returned by every
// catalog endpoint.
type SessionResponse struct {
	Email       string     `json:"email"`
	Tags        []string   `json:"tags"`
	TagFilter   []string   `json:"tag_filter"`
	CanAddItems bool       `json:"can_add_items"`
	Items       []ItemView `json:"items"`
}

// ItemDeletedMessage rides the item.deleted topic so the cleanup consumer
// can drop the item's image blobs.
type ItemDeletedMessage struct {
	Email  string `json:"email"`
	ItemId int    `json:"item_id"`
}
