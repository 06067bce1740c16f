package apitablev1

import (
	"github.com/fulldump/box"
)

func BuildV1Table(v1 *box.R) *box.R {

	tables := v1.Resource("/tables").
		WithActions(
			box.Get(listTables),
			box.Post(createTable),
		)

	v1.Resource("/tables/{tableName}").
		WithActions(
			box.Get(getTable),
			box.ActionPost(drop),
			box.ActionPost(upsert),
			box.ActionPost(remove),
			box.ActionPost(load),
			box.ActionPost(query),
			box.ActionPost(scroll),
			box.ActionPost(layout),
		)

	return tables
}
