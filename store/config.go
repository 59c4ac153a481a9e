package store

import "strings"

// Config holds configuration for the DynamoDB store.
type Config struct {
	// TablePrefix is prepended to a collection name to form its table name.
	// Default: "admin_"
	TablePrefix string

	// SubItemTable is the table holding all sub-collection records.
	// Default: "admin_subitems"
	SubItemTable string

	// Indexes maps "collection.field" to the name of a global secondary index
	// whose hash key is that field. Filtered lists on an indexed field use Query;
	// all other filtered lists fall back to Scan.
	// Default: {"products.vendorId": "vendorId-index"}
	Indexes map[string]string
}

// DefaultConfig returns the default table layout.
func DefaultConfig() Config {
	return Config{
		TablePrefix:  "admin_",
		SubItemTable: "admin_subitems",
		Indexes: map[string]string{
			"products.vendorId": "vendorId-index",
		},
	}
}

// validate fills in missing values.
func (c *Config) validate() {
	if c.TablePrefix == "" {
		c.TablePrefix = "admin_"
	}
	if c.SubItemTable == "" {
		c.SubItemTable = c.TablePrefix + "subitems"
	}
	if c.Indexes == nil {
		c.Indexes = map[string]string{}
	}
}

// TableName returns the table name for a collection.
func (c Config) TableName(collection string) string {
	return c.TablePrefix + collection
}

// CollectionForTable reverses TableName.
// It reports false for the sub-item table and for tables outside the prefix.
func (c Config) CollectionForTable(table string) (string, bool) {
	if table == "" || table == c.SubItemTable || !strings.HasPrefix(table, c.TablePrefix) {
		return "", false
	}
	collection := strings.TrimPrefix(table, c.TablePrefix)
	return collection, collection != ""
}

// indexFor returns the GSI configured for a filtered list, or "".
func (c Config) indexFor(collection, field string) string {
	return c.Indexes[collection+"."+field]
}
