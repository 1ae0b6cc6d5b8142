package dhl

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/tournevent/shipbridge/pkg/shipper"
)

// Response elements the extractor captures, by local name.
const (
	fieldAirwayBill    = "AirwayBillNumber"
	fieldOutputImage   = "OutputImage"
	fieldConditionCode = "ConditionCode"
	fieldConditionData = "ConditionData"
)

var capturedFields = map[string]bool{
	fieldAirwayBill:    true,
	fieldOutputImage:   true,
	fieldConditionCode: true,
	fieldConditionData: true,
}

type extractState int

const (
	stateScanning extractState = iota
	stateResultFound
	stateErrorFound
	stateExhausted
)

func (s extractState) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateResultFound:
		return "result_found"
	case stateErrorFound:
		return "error_found"
	case stateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("extractState(%d)", int(s))
	}
}

// scan holds what one pass over the response captured.
type scan struct {
	state      extractState
	airwayBill string
	image      string
	hasImage   bool
	conditions []shipper.Condition
	err        error
}

// scanResponse walks the token stream once without building a tree. The
// label image can be large, so only the captured fields are buffered.
func scanResponse(body []byte) scan {
	var (
		s         scan
		capturing string
		buf       strings.Builder
	)

	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if capturedFields[t.Name.Local] {
				capturing = t.Name.Local
				buf.Reset()
			}
		case xml.CharData:
			if capturing != "" {
				buf.Write(t)
			}
		case xml.EndElement:
			if capturing == "" || t.Name.Local != capturing {
				continue
			}
			s.capture(capturing, buf.String())
			capturing = ""
		}
	}

	switch {
	case s.airwayBill != "":
		s.state = stateResultFound
	case hasConditionMessage(s.conditions):
		s.state = stateErrorFound
	default:
		s.state = stateExhausted
	}
	return s
}

// hasConditionMessage reports whether any condition carries text. Codes alone
// do not identify the failure.
func hasConditionMessage(conds []shipper.Condition) bool {
	for _, c := range conds {
		if strings.TrimSpace(c.Message) != "" {
			return true
		}
	}
	return false
}

func (s *scan) capture(field, text string) {
	switch field {
	case fieldAirwayBill:
		if s.airwayBill == "" {
			s.airwayBill = strings.TrimSpace(text)
		}
	case fieldOutputImage:
		if !s.hasImage {
			s.image = text
			s.hasImage = true
		}
	case fieldConditionCode:
		s.conditions = append(s.conditions, shipper.Condition{Code: strings.TrimSpace(text)})
	case fieldConditionData:
		if len(s.conditions) == 0 {
			s.conditions = append(s.conditions, shipper.Condition{})
		}
		s.conditions[len(s.conditions)-1].Message = text
	}
}

// extract turns a raw ShipmentResponse into a result. There is no partial
// success: without an airway bill number the response is an error.
func extract(body []byte) (*shipper.ShipmentResult, error) {
	s := scanResponse(body)

	switch s.state {
	case stateResultFound:
		if s.err != nil && !s.hasImage {
			return nil, malformed(body, fmt.Errorf("truncated response: %w", s.err))
		}
		label, err := decodeImage(s.image)
		if err != nil {
			return nil, malformed(body, err)
		}
		return &shipper.ShipmentResult{
			TrackingNumber: s.airwayBill,
			Carrier:        carrierName,
			Label:          label,
			RawResponse:    string(body),
		}, nil

	case stateErrorFound:
		return nil, shipper.NewCarrierRejectionError(carrierName, s.conditions...)

	default:
		if s.err == nil && len(s.conditions) > 0 {
			return nil, malformed(body, fmt.Errorf("condition %s without message", s.conditions[0].Code))
		}
		return nil, malformed(body, s.err)
	}
}

func decodeImage(encoded string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, encoded)
	if clean == "" {
		return nil, nil
	}
	label, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("decode label image: %w", err)
	}
	return label, nil
}

func malformed(body []byte, cause error) error {
	return &shipper.MalformedResponseError{
		Carrier: carrierName,
		Body:    string(body),
		Cause:   cause,
	}
}
