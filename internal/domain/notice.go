package domain

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a user-facing message produced by a state transition.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}
