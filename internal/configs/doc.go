// Package configs resolves the storage and config directories and
// manages the plaintext sidecar files: the database metadata (imported
// database list, active selector, setup flags) and the email templates.
// Both persist as TOML; the encrypted payload itself never passes
// through this package.
package configs
