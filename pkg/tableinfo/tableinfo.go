package tableinfo

const (
	PostsTableName = "posts"

	PostIDColumn              = "id"
	PostTitleColumn           = "title"
	PostBodyColumn            = "body"
	PostCommentsEnabledColumn = "comments_enabled"
	PostCreatedAtColumn       = "created_at"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn        = "id"
	CommentPostIDColumn    = "post_id"
	CommentBodyColumn      = "body"
	CommentCreatedAtColumn = "created_at"
)
