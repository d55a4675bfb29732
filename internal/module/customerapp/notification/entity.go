package notification

// Message is one outbound customer notification routed through the
// notification gateway.
type Message struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
