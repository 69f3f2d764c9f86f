package constants

const (
	// HTTP headers
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderStripeSignature = "Stripe-Signature"
	HeaderRetryAfter      = "Retry-After"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableSubscriptions          = "subscriptions"
	TableProjects               = "projects"
	TableProjectImages          = "project_images"
	TableGeneratedVideos        = "generated_videos"
	TableProcessedWebhookEvents = "processed_webhook_events"

	// Generated video object layout
	VideoContentType   = "video/mp4"
	VideoFileExtension = ".mp4"

	// Render settings sent with every generation task
	VideoDurationSeconds = 8
	VideoResolution      = "1080p"
	VideoAspectRatio     = "9:16"
)
