package config

// KindCfg describes how one related-entity kind is looked up in the document
// store and which fields survive normalization. The "id" field is always kept.
type KindCfg struct {
	// Collection is the document collection queried for this kind.
	Collection string `yaml:"collection"`

	// OwnerField is the equality-filter field used by plural kinds.
	// The singular user kind looks up by document id and leaves it empty.
	OwnerField string `yaml:"owner_field"`

	// Fields is the whitelist copied into cached records besides "id".
	Fields []string `yaml:"fields"`
}

// AccessorsCfg wires the six typed accessors to concrete collections.
// Collection and field names are caller configuration, not part of the cache
// contract; the defaults below match the company_id backfill tooling.
type AccessorsCfg struct {
	User       KindCfg `yaml:"user"`
	Products   KindCfg `yaml:"products"`
	Bookings   KindCfg `yaml:"bookings"`
	Quotations KindCfg `yaml:"quotations"`
	Chats      KindCfg `yaml:"chats"`
	Followers  KindCfg `yaml:"followers"`
}

func (cfg *AccessorsCfg) applyDefaults() {
	def := func(dst *KindCfg, collection, ownerField string, fields ...string) {
		if dst.Collection == "" {
			dst.Collection = collection
		}
		if dst.OwnerField == "" {
			dst.OwnerField = ownerField
		}
		if len(dst.Fields) == 0 {
			dst.Fields = fields
		}
	}

	def(&cfg.User, "users", "", "company_id", "email", "name")
	def(&cfg.Products, "products", "user_id", "company_id", "user_id", "name", "status")
	def(&cfg.Bookings, "bookings", "user_id", "company_id", "user_id", "status")
	def(&cfg.Quotations, "quotations", "user_id", "company_id", "user_id", "status")
	def(&cfg.Chats, "chats", "participant_id", "company_id", "participant_id")
	def(&cfg.Followers, "followers", "user_id", "company_id", "user_id")
}
