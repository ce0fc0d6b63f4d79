package schema

const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "catalog_event",
	"fields" : [
		{"name": "event_type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "type", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "quantity", "type": "long"},
		{"name": "description", "type": "string"},
		{"name": "images", "type": {"type": "array", "items": "string"}},
		{"name": "image", "type": "string"}
	]
}`

// CatalogEventV1 is the wire form of one committed catalog mutation.
type CatalogEventV1 struct {
	EventType   string   `avro:"event_type"`
	ProductID   string   `avro:"product_id"`
	Name        string   `avro:"name"`
	Type        string   `avro:"type"`
	Price       float64  `avro:"price"`
	Quantity    int      `avro:"quantity"`
	Description string   `avro:"description"`
	Images      []string `avro:"images"`
	Image       string   `avro:"image"`
}
