package services

// Publisher pushes a content event to connected clients. The realtime hub
// implements it; services treat a nil Publisher as "no push configured".
type Publisher interface {
	Publish(event string, payload any)
}

// Events emitted by the article and comment services.
const (
	EventArticleCreated = "article.created"
	EventArticleUpdated = "article.updated"
	EventArticleDeleted = "article.deleted"
	EventCommentCreated = "comment.created"
)
