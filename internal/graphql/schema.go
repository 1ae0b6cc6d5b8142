package graphql

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const schemaSource = `
type Query {
  health: Health!
  carriers: [String!]!
}

type Mutation {
  createShipment(input: CreateShipmentInput!): ShipmentPayload!
  cancelShipment(input: CancelShipmentInput!): CancelPayload!
}

type Health {
  status: String!
  carriers: Int!
}

enum UnitSystem {
  IMPERIAL
  METRIC
}

input AddressInput {
  line1: String!
  line2: String
  line3: String
  city: String!
  division: String
  provinceCode: String
  postalCode: String
  countryCode: String!
}

input ContactInput {
  name: String!
  company: String
  phone: String
  email: String
  taxId: String
}

"Dimensions and weight in the units of the request's unit system."
input ParcelInput {
  width: Float!
  height: Float!
  length: Float!
  weight: Float!
  insuredValue: String
}

input ExportDeclarationInput {
  description: String!
  quantity: Int!
  value: String!
  weight: Float!
  originCountryCode: String
}

"Sets a raw wire field by dotted path. A null value removes the field."
input OverrideInput {
  path: String!
  value: String
}

input CreateShipmentInput {
  carrier: String!
  sender: ContactInput!
  senderAddress: AddressInput!
  recipient: ContactInput!
  recipientAddress: AddressInput!
  parcels: [ParcelInput!]!
  unitSystem: UnitSystem
  specialServices: [String!]
  signatureRequired: Boolean
  dutiable: Boolean
  currency: String
  incoterm: String
  contents: String
  declaredValue: String
  insuredValue: String
  transactionNumber: String
  exportDeclarations: [ExportDeclarationInput!]
  invoiceNumber: String
  reference: String
  productCode: String
  shipDate: String
  overrides: [OverrideInput!]
}

input CancelShipmentInput {
  carrier: String!
  shipmentId: String!
  reason: String
}

type Condition {
  code: String!
  message: String!
}

type Error {
  code: String!
  message: String!
  carrierCode: String
  conditions: [Condition!]
  retryable: Boolean!
}

type ResponseMetadata {
  requestId: String!
  timestamp: String!
  durationMs: Int!
}

type ShipmentPayload {
  success: Boolean!
  trackingNumber: String
  carrier: String
  label: String
  errors: [Error!]
  metadata: ResponseMetadata!
}

type CancelPayload {
  success: Boolean!
  shipmentId: String!
  status: String!
  supported: Boolean!
  message: String
  errors: [Error!]
  metadata: ResponseMetadata!
}
`

// Schema is the parsed and validated service schema.
var Schema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})
