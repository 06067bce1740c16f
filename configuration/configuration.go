package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	HttpsEnabled      bool   `usage:"serve HTTPS"`
	HttpsSelfsigned   bool   `usage:"use a self signed certificate"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	ApiKey            string `usage:"API key required in the Api-Key header, empty disables authentication"`
	ApiSecret         string `usage:"API secret required in the Api-Secret header"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
	Table             Table
}

// Table holds the defaults for tables created without explicit options.
type Table struct {
	EstimatedRowHeight float64 `usage:"height of rows that have not been measured"`
	HeaderHeight       float64 `usage:"height above the first row"`
	FooterHeight       float64 `usage:"height below the last row"`
	FloatingFooter     bool    `usage:"footer scrolls with the content"`
	InterRowSpacing    float64 `usage:"space between consecutive rows"`
	Lazy               bool    `usage:"measure only the rows around the viewport"`
	PrefetchRows       int     `usage:"rows measured above and below the viewport in lazy mode"`
	FullReloadRatio    float64 `usage:"share of inserted plus deleted rows that triggers a full reload, negative disables"`
	LineHeight         float64 `usage:"height of one line of cell text"`
	ColumnWidth        int     `usage:"default column width in cells"`
}

func Default() *Configuration {
	return &Configuration{
		HttpAddr: "127.0.0.1:8080",
		Table: Table{
			EstimatedRowHeight: 44,
			Lazy:               true,
			PrefetchRows:       20,
			FullReloadRatio:    0.5,
			LineHeight:         22,
			ColumnWidth:        20,
		},
	}
}
