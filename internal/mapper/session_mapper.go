package mapper

import (
	"collectible-documenter-be/internal/dto"
	"collectible-documenter-be/internal/entity"
)

// ToSessionResponse renders a session: items in list order, delete disabled
// while only one item remains.
func ToSessionResponse(session *entity.Session) *dto.SessionResponse {
	st := session.State
	canDelete := len(st.Items) > 1

	items := make([]dto.ItemView, 0, len(st.Items))
	for _, id := range st.Items {
		view := dto.ItemView{
			Id:           id,
			TagSelection: []string{},
			CanDelete:    canDelete,
		}
		if rec, ok := st.Record(id); ok {
			view.Name = rec.Name
			view.FrontImage = rec.FrontImage
			view.BackImage = rec.BackImage
			view.Transcript = rec.Transcript
			if rec.TagSelection != nil {
				view.TagSelection = rec.TagSelection
			}
		}
		items = append(items, view)
	}

	tags := st.Tags
	if tags == nil {
		tags = []string{}
	}
	filter := st.TagFilter
	if filter == nil {
		filter = []string{}
	}

	return &dto.SessionResponse{
		Email:       session.Email,
		Tags:        tags,
		TagFilter:   filter,
		CanAddItems: st.CanAddItems(),
		Items:       items,
	}
}
