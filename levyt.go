// Package levyt is a convenience layer over database/sql. It runs SQL
// text against a connection, materializes result rows into lazily
// realized collections of ordered records, and exports them to common
// tabular formats.
//
// Typical use:
//
//	db, err := levyt.Open("sqlite:///app.db")
//	if err != nil { ... }
//	defer db.Close()
//
//	rows, err := db.Query(ctx, "SELECT * FROM users WHERE active = :active", levyt.Params{"active": true})
//	if err != nil { ... }
//	name, err := rows.First()
//	csv, err := rows.Export("csv")
//
// Parameters are bound with the :name syntax regardless of the
// underlying driver's placeholder style.
package levyt

// Version is the levyt release version.
const Version = "0.1.0"
