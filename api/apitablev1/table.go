package apitablev1

import (
	"github.com/fulldump/virtualtable/service"
)

type TableResponse = service.TableInfo
