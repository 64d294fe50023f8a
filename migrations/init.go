package migrations

import (
	"io/fs"

	credstore "github.com/marketeye/go-credstore"
)

func init() {
	coreFS, err := fs.Sub(credstore.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
