package settings

import (
	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "settings", "s").
	Project("key", "Key").
	Project("value", "Value").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Key"}

func scanSetting(s repository.Scanner) (Setting, error) {
	var v Setting
	err := s.Scan(&v.Key, &v.Value, &v.UpdatedAt)
	return v, err
}
