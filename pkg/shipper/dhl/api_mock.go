package dhl

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockLabel is the label the mock returns on success.
var MockLabel = []byte("%PDF-1.4 mock label data")

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnSubmit func(ctx context.Context, body []byte) ([]byte, error)

	mu       sync.Mutex
	requests [][]byte
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Submit records body and answers with a canned ShipmentResponse, or with a
// condition document when SimulateErrors is set.
func (m *MockAPIClient) Submit(ctx context.Context, body []byte) ([]byte, error) {
	m.mu.Lock()
	m.requests = append(m.requests, append([]byte(nil), body...))
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		select {
		case <-time.After(m.SimulateLatency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.SimulateErrors {
		return ConditionResponse("154", "null field value is invalid"), nil
	}

	if m.OnSubmit != nil {
		return m.OnSubmit(ctx, body)
	}

	awb := fmt.Sprintf("%010d", uuid.New().ID())
	return SuccessResponse(awb, MockLabel), nil
}

// Requests returns copies of every submitted body, oldest first.
func (m *MockAPIClient) Requests() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.requests))
	copy(out, m.requests)
	return out
}

// SuccessResponse renders a minimal ShipmentResponse document.
func SuccessResponse(airwayBill string, label []byte) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<res:ShipmentResponse xmlns:res="http://www.dhl.com">`)
	b.WriteString(`<Note><ActionNote>Success</ActionNote></Note>`)
	fmt.Fprintf(&b, `<AirwayBillNumber>%s</AirwayBillNumber>`, airwayBill)
	fmt.Fprintf(&b, `<LabelImage><OutputFormat>PDF</OutputFormat><OutputImage>%s</OutputImage></LabelImage>`,
		base64.StdEncoding.EncodeToString(label))
	b.WriteString(`</res:ShipmentResponse>`)
	return []byte(b.String())
}

// ConditionResponse renders an ErrorResponse document with one condition.
func ConditionResponse(code, message string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<res:ShipmentValidateErrorResponse xmlns:res="http://www.dhl.com">`)
	b.WriteString(`<Response><Status><ActionStatus>Error</ActionStatus>`)
	b.WriteString(`<Condition><ConditionCode>`)
	xml.EscapeText(&b, []byte(code))
	b.WriteString(`</ConditionCode><ConditionData>`)
	xml.EscapeText(&b, []byte(message))
	b.WriteString(`</ConditionData></Condition>`)
	b.WriteString(`</Status></Response></res:ShipmentValidateErrorResponse>`)
	return []byte(b.String())
}

var _ APIClient = (*MockAPIClient)(nil)
