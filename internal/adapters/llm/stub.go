package llm

import "context"

// stubResponse is a deterministic, well-formed synthesis payload. It
// lets the full pipeline run without reasoning-service credentials.
const stubResponse = `{
  "summary": "Automated synthesis is disabled because no reasoning service is configured. The per-dimension findings above are complete; review their issues lists for specific fixes.",
  "recommendations": [
    "Address the highest-severity issues reported by the SEO analysis first.",
    "Verify the page renders usably at mobile viewport widths.",
    "Reduce render-blocking resources and enable lazy loading for below-the-fold images.",
    "Ensure all images carry alt text and form controls have labels."
  ],
  "snippets": {}
}`

// Stub satisfies the synthesis Reasoner contract without network
// access. It stands in for the real client when no API key is set.
type Stub struct{}

// NewStub creates the no-credentials reasoning stub.
func NewStub() *Stub { return &Stub{} }

func (*Stub) Complete(_ context.Context, _ string) (string, error) {
	return stubResponse, nil
}
