package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mrz1836/conduit/internal/chain"
	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// transactionID builds a registry id unique per attempt and readable
// enough to trace: family, chain and origin scope plus a uuid.
func transactionID(family chain.Family, chainSlug string, isInternal bool) string {
	scope := "external"
	if isInternal {
		scope = "internal"
	}
	return fmt.Sprintf("%s.%s.%s.%s", family, chainSlug, scope, uuid.NewString())
}

// newRecord materializes a validated response into a registry record
// with default lifecycle fields.
func (s *Service) newRecord(resp *Response) *Record {
	isInternal := resp.URL == ""
	now := time.Now()

	return &Record{
		ID:          transactionID(resp.ChainType, resp.Chain, isInternal),
		Address:     resp.Address,
		Chain:       resp.Chain,
		ChainType:   resp.ChainType,
		URL:         resp.URL,
		IsInternal:  isInternal,
		Status:      StatusPending,
		Evm:         resp.Evm.Clone(),
		Extrinsic:   resp.Extrinsic,
		Data:        resp.Data,
		EstimateFee: resp.EstimateFee,
		Errors:      append([]*conduiterr.TxError(nil), resp.Errors...),
		Warnings:    append([]*conduiterr.Warning(nil), resp.Warnings...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
