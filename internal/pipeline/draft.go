package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/logging"
)

// DraftResult holds a generated reply and the search context it was
// grounded on, if any.
type DraftResult struct {
	Text          string
	SearchContext string
}

// Draft generates a reply for a stored email. With search enabled the
// draft is grounded on formatted web results; search failures degrade to
// an ungrounded draft rather than failing the operation. The draft is
// not persisted, it stays with the operator until a dispatch action.
func (p *Pipeline) Draft(ctx context.Context, emailID string, withSearch bool) (_ *DraftResult, err error) {
	ctx, span := p.begin(ctx, "draft", emailID)
	start := time.Now()
	defer func() { p.record(ctx, span, "draft", start, err) }()

	if err = p.requireGenerator(); err != nil {
		return nil, err
	}

	email, err := p.records.GetEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}

	result := &DraftResult{}

	if withSearch {
		result.SearchContext = p.searchContext(ctx, emailID, email.Body)
	}

	draft, err := p.gen.Draft(ctx, email.Body, email.Sender, result.SearchContext)
	if err != nil {
		return nil, fmt.Errorf("drafting failed: %w", err)
	}
	result.Text = draft

	return result, nil
}

// searchContext generates a query from the email and runs it. Any
// failure along the way is logged and yields no context.
func (p *Pipeline) searchContext(ctx context.Context, emailID, body string) string {
	if p.searcher == nil {
		p.log.Warn("search requested but capability unavailable",
			logging.KeyEmailID, emailID,
		)
		return ""
	}

	query, err := p.gen.SearchQuery(ctx, body)
	if err != nil {
		p.log.Warn("search query generation failed",
			logging.KeyEmailID, emailID,
			logging.KeyError, err.Error(),
		)
		return ""
	}

	searchCtx, searchSpan := instrumentation.StartCapabilitySpan(ctx, instrumentation.ServiceSearch, instrumentation.OperationSearch)
	searchStart := time.Now()
	formatted, err := p.searcher.SearchAndFormat(searchCtx, query, p.searchResults)
	p.capability(searchCtx, searchSpan, instrumentation.ServiceSearch, instrumentation.OperationSearch, searchStart, err)
	if err != nil {
		p.log.Warn("search failed, drafting without grounding",
			logging.KeyEmailID, emailID,
			logging.KeyError, err.Error(),
		)
		return ""
	}

	return formatted
}
