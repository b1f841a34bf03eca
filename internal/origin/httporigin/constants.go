package httporigin

const (
	defaultBaseURL = "https://haloquotes.teamrespawntv.com/quotes"
	userAgent      = "halo-quotes-service"
)
