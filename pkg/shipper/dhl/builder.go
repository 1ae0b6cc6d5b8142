package dhl

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tournevent/shipbridge/pkg/measure"
	"github.com/tournevent/shipbridge/pkg/payload"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

const (
	schemaVersion  = "6.2"
	maxCountryName = 35
	dateLayout     = "2006-01-02"
)

var requestRoot = payload.Root{
	Name: "req:ShipmentRequest",
	Attrs: []xml.Attr{
		{Name: xml.Name{Local: "xmlns:req"}, Value: "http://www.dhl.com"},
		{Name: xml.Name{Local: "xmlns:xsi"}, Value: "http://www.w3.org/2001/XMLSchema-instance"},
		{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: "http://www.dhl.com ship-val-global-req.xsd"},
		{Name: xml.Name{Local: "schemaVersion"}, Value: schemaVersion},
	},
}

// senderPaysIncoterms lists the terms of trade under which the shipper bears duty.
var senderPaysIncoterms = map[string]bool{
	"DDP": true,
}

// dutyPaymentType returns "S" when the sender pays duty under incoterm and "R"
// (receiver) otherwise.
func dutyPaymentType(incoterm string) string {
	if senderPaysIncoterms[strings.ToUpper(strings.TrimSpace(incoterm))] {
		return "S"
	}
	return "R"
}

// Credentials identify the DHL XML-PI account. They are read-only once built.
type Credentials struct {
	SiteID        string
	Password      string
	AccountNumber string
}

// wireOptions are the account-wide constants stamped on every request.
type wireOptions struct {
	RegionCode       string
	LanguageCode     string
	ProductCode      string
	LabelTemplate    string
	LabelImageFormat string
	SoftwareName     string
	SoftwareVersion  string
}

// builder maps a normalized request onto the ShipmentRequest tree.
type builder struct {
	creds     Credentials
	countries CountryNames
	opts      wireOptions
	now       time.Time
	reference string
}

func newBuilder(creds Credentials, countries CountryNames, opts wireOptions, now time.Time) *builder {
	return &builder{
		creds:     creds,
		countries: countries,
		opts:      opts,
		now:       now,
		reference: strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
}

// build returns the full tree, including Null markers for absent fields, with
// the request overrides applied last.
func (b *builder) build(n normalizedRequest) (*payload.Node, error) {
	req := n.req
	root := payload.Map().
		Set("Request", b.header()).
		Set("RegionCode", payload.Text(b.opts.RegionCode)).
		Set("LanguageCode", payload.Text(b.opts.LanguageCode)).
		Set("PiecesEnabled", payload.Scalar("Y")).
		Set("Billing", b.billing(req)).
		Set("Consignee", b.party(req.Recipient, req.RecipientAddress)).
		Set("Dutiable", b.dutiable(n)).
		Set("UseDHLInvoice", payload.When(len(n.declarations) > 0, payload.Scalar("Y"))).
		Set("ExportDeclaration", b.exportDeclaration(n)).
		Set("Reference", payload.Map().Set("ReferenceID", payload.Text(req.Reference))).
		Set("ShipmentDetails", b.shipmentDetails(n)).
		Set("Shipper", b.shipper(req)).
		Set("SpecialService", b.specialServices(n)).
		Set("LabelImageFormat", payload.Text(b.opts.LabelImageFormat)).
		Set("Label", payload.Map().Set("LabelTemplate", payload.Text(b.opts.LabelTemplate)))

	if err := applyOverrides(root, req.Overrides); err != nil {
		return nil, err
	}
	return root, nil
}

func (b *builder) header() *payload.Node {
	return payload.Map().
		Set("ServiceHeader", payload.Map().
			Set("MessageTime", payload.Scalar(b.now.Format(time.RFC3339))).
			Set("MessageReference", payload.Scalar(b.reference)).
			Set("SiteID", payload.Text(b.creds.SiteID)).
			Set("Password", payload.Text(b.creds.Password))).
		Set("MetaData", payload.Map().
			Set("SoftwareName", payload.Text(b.opts.SoftwareName)).
			Set("SoftwareVersion", payload.Text(b.opts.SoftwareVersion)))
}

func (b *builder) billing(req *shipper.ShipmentRequest) *payload.Node {
	account := payload.Text(b.creds.AccountNumber)
	dutyPayer := dutyPaymentType(req.Incoterm)

	return payload.Map().
		Set("ShipperAccountNumber", account).
		Set("ShippingPaymentType", payload.Scalar("S")).
		Set("BillingAccountNumber", account.Clone()).
		Set("DutyPaymentType", payload.When(req.Dutiable, payload.Scalar(dutyPayer))).
		Set("DutyAccountNumber", payload.When(req.Dutiable && dutyPayer == "S", account.Clone()))
}

// party renders the address block shared by Consignee and Shipper.
func (b *builder) party(contact shipper.Contact, addr shipper.Address) *payload.Node {
	company := contact.Company
	if company == "" {
		company = contact.Name
	}
	return payload.Map().
		Set("CompanyName", payload.Text(company)).
		Set("AddressLine1", payload.Text(addr.Line1)).
		Set("AddressLine2", payload.Text(addr.Line2)).
		Set("AddressLine3", payload.Text(addr.Line3)).
		Set("City", payload.Text(addr.City)).
		Set("Division", payload.Text(addr.Division)).
		Set("DivisionCode", payload.Text(addr.ProvinceCode)).
		Set("PostalCode", payload.Text(addr.PostalCode)).
		Set("CountryCode", payload.Text(strings.ToUpper(addr.CountryCode))).
		Set("CountryName", payload.Text(b.countryName(addr.CountryCode))).
		Set("Contact", payload.Map().
			Set("PersonName", payload.Text(contact.Name)).
			Set("PhoneNumber", payload.Text(contact.Phone)).
			Set("Email", payload.Text(contact.Email)))
}

func (b *builder) countryName(code string) string {
	if b.countries == nil || code == "" {
		return ""
	}
	return truncateRunes(b.countries.CountryName(code), maxCountryName)
}

func (b *builder) dutiable(n normalizedRequest) *payload.Node {
	req := n.req
	var filing *payload.Node
	if req.TransactionNumber != "" {
		filing = payload.Map().
			Set("FilingType", payload.Scalar("ITN")).
			Set("ITN", payload.Scalar(req.TransactionNumber))
	}

	return payload.Map().
		Set("DeclaredValue", payload.When(req.Dutiable, payload.Scalar(n.declaredValue.Format()))).
		Set("DeclaredCurrency", payload.When(req.Dutiable, payload.Text(n.declaredValue.Currency))).
		Set("TermsOfTrade", payload.When(req.Dutiable, payload.Text(strings.ToUpper(req.Incoterm)))).
		Set("Filing", filing)
}

func (b *builder) exportDeclaration(n normalizedRequest) *payload.Node {
	lines := payload.List()
	for i, d := range n.declarations {
		weight := payload.Map().
			Set("Weight", payload.Scalar(d.Weight.Format(2))).
			Set("WeightUnit", payload.Scalar(weightUnitCode(n.massUnit)))

		lines.Append(payload.Map().
			Set("LineNumber", payload.Scalar(strconv.Itoa(i+1))).
			Set("Quantity", payload.Scalar(strconv.Itoa(d.Quantity))).
			Set("QuantityUnit", payload.Scalar("PCS")).
			Set("Description", payload.Text(d.Description)).
			Set("Value", payload.Scalar(unitValue(d))).
			Set("Weight", weight).
			Set("GrossWeight", weight.Clone()).
			Set("ManufactureCountryCode", payload.Text(strings.ToUpper(d.OriginCountryCode))))
	}

	hasLines := len(n.declarations) > 0
	return payload.Map().
		Set("InvoiceNumber", payload.When(hasLines, payload.Text(n.req.InvoiceNumber))).
		Set("InvoiceDate", payload.When(hasLines, payload.Scalar(b.shipDate(n.req)))).
		Set("ExportLineItem", lines)
}

// unitValue is the line total divided by the quantity, two decimals. A
// non-positive quantity is treated as one unit.
func unitValue(d shipper.ExportDeclaration) string {
	qty := d.Quantity
	if qty < 1 {
		qty = 1
	}
	return strconv.FormatFloat(d.Value.Decimal()/float64(qty), 'f', 2, 64)
}

func (b *builder) shipmentDetails(n normalizedRequest) *payload.Node {
	req := n.req
	pieces := payload.List()
	for i, p := range n.parcels {
		pieces.Append(payload.Map().
			Set("PieceID", payload.Scalar(strconv.Itoa(i+1))).
			Set("Weight", payload.Scalar(p.Weight.Format(2))).
			Set("Width", payload.Scalar(p.Width.Format(0))).
			Set("Height", payload.Scalar(p.Height.Format(0))).
			Set("Depth", payload.Scalar(p.Length.Format(0))))
	}

	productCode := req.ProductCode
	if productCode == "" {
		productCode = b.opts.ProductCode
	}
	dutiable := "N"
	if req.Dutiable {
		dutiable = "Y"
	}

	return payload.Map().
		Set("NumberOfPieces", payload.Scalar(strconv.Itoa(len(n.parcels)))).
		Set("Pieces", payload.Map().Set("Piece", pieces)).
		Set("Weight", payload.Scalar(n.totalWeight.Format(2))).
		Set("WeightUnit", payload.Scalar(weightUnitCode(n.massUnit))).
		Set("GlobalProductCode", payload.Text(productCode)).
		Set("LocalProductCode", payload.Text(productCode)).
		Set("Date", payload.Scalar(b.shipDate(req))).
		Set("Contents", payload.Text(n.contents)).
		Set("DimensionUnit", payload.Scalar(dimensionUnitCode(n.lengthUnit))).
		Set("IsDutiable", payload.Scalar(dutiable)).
		Set("CurrencyCode", payload.Text(req.Currency))
}

func (b *builder) shipper(req *shipper.ShipmentRequest) *payload.Node {
	node := payload.Map().Set("ShipperID", payload.Text(b.creds.AccountNumber))
	party := b.party(req.Sender, req.SenderAddress)
	for _, k := range party.Keys() {
		v, _ := party.Get(k)
		node.Set(k, v)
	}
	return node
}

// specialServices lists the normalized codes followed by the insurance entry.
func (b *builder) specialServices(n normalizedRequest) *payload.Node {
	list := payload.List()
	for _, code := range n.services {
		list.Append(payload.Map().Set("SpecialServiceType", payload.Scalar(code)))
	}
	if n.insuredValue.Amount > 0 {
		list.Append(payload.Map().
			Set("SpecialServiceType", payload.Scalar(ServiceInsurance)).
			Set("ChargeValue", payload.Scalar(n.insuredValue.Format())).
			Set("CurrencyCode", payload.Text(n.insuredValue.Currency)))
	}
	return list
}

func (b *builder) shipDate(req *shipper.ShipmentRequest) string {
	if !req.ShipDate.IsZero() {
		return req.ShipDate.Format(dateLayout)
	}
	return b.now.Format(dateLayout)
}

// applyOverrides writes overrides in lexical path order so that a parent path
// is applied before its children.
func applyOverrides(root *payload.Node, overrides map[string]any) error {
	paths := make([]string, 0, len(overrides))
	for p := range overrides {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := root.SetPath(p, payload.FromValue(overrides[p])); err != nil {
			return fmt.Errorf("%w: override %q: %v", shipper.ErrInvalidShipment, p, err)
		}
	}
	return nil
}

func weightUnitCode(u measure.MassUnit) string {
	if u == measure.Pound {
		return "L"
	}
	return "K"
}

func dimensionUnitCode(u measure.LengthUnit) string {
	if u == measure.Inch {
		return "I"
	}
	return "C"
}

// truncateRunes cuts s to at most max code points.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
