package rewrite

import "context"

// PlaceholderClient is a stand-in Client for environments without completion
// credentials. Generation attempts fail with a transport fault, which the job
// layer surfaces on the document; the rest of the app starts normally.
type PlaceholderClient struct{}

func (PlaceholderClient) Generate(ctx context.Context, input Input) (string, error) {
	return "", &Error{Kind: KindTransportFault, Detail: "completion client not configured; set OPENAI_API_KEY"}
}

func (PlaceholderClient) IsAvailable(ctx context.Context) bool { return false }

var _ Client = PlaceholderClient{}
