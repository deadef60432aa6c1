package sciencebase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/logger"
)

// Ensure Submitter implements the interface.
var _ driven.CatalogSubmitter = (*Submitter)(nil)

// Submitter creates one catalog item per record.
type Submitter struct {
	client   *Client
	contacts []domain.Contact
}

// NewSubmitter creates a submitter. The given contacts, typically the data
// owner and steward, lead the contact list of every item.
func NewSubmitter(client *Client, contacts ...domain.Contact) *Submitter {
	return &Submitter{client: client, contacts: contacts}
}

// Submit performs one create call and classifies its outcome.
func (s *Submitter) Submit(ctx context.Context, parentID string, rec *domain.Record) domain.SubmissionResult {
	result := domain.SubmissionResult{RecordID: rec.ID}

	it, err := buildItem(parentID, rec, s.contacts)
	if err != nil {
		return failed(result, fmt.Errorf("build item: %w", err))
	}

	reqURL := s.client.BaseURL() + "/item/"
	resp, sent, err := s.client.postJSON(ctx, reqURL, it)
	if err != nil {
		if sent {
			return unknown(result, err)
		}
		return failed(result, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		var created item
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			logger.Warn("sciencebase: item for record %s created but response unreadable: %v", rec.ID, err)
		}
		result.Status = domain.SubmissionCreated
		result.ItemID = created.ID
		if created.Link != nil {
			result.URL = created.Link.URL
		}
		if result.URL == "" && created.ID != "" {
			result.URL = s.client.BaseURL() + "/item/" + created.ID
		}
		return result
	case isAmbiguousStatus(resp.StatusCode):
		return unknown(result, newAPIError(resp, reqURL))
	default:
		return failed(result, newAPIError(resp, reqURL))
	}
}

func failed(r domain.SubmissionResult, err error) domain.SubmissionResult {
	r.Status = domain.SubmissionFailed
	r.Err = fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	return r
}

func unknown(r domain.SubmissionResult, err error) domain.SubmissionResult {
	r.Status = domain.SubmissionUnknown
	r.Err = fmt.Errorf("%w: %w", domain.ErrAmbiguousOutcome, err)
	return r
}
