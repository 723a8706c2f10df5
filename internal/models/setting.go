package models

// Setting keys.
const (
	SettingStoreName = "store_name"
	SettingPassword  = "password"
)

// Setting is a single key/value configuration row.
type Setting struct {
	Key   string
	Value string
}
