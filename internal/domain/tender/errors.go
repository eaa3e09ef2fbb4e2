// =====================================================================
// 🚨 ДОМЕННЫЕ ОШИБКИ ДЛЯ TENDER
// =====================================================================

package tender

import "errors"

var (
	ErrEmptyNumber = errors.New("tender number cannot be empty")
	ErrEmptyName   = errors.New("tender name cannot be empty")
	ErrEmptyURL    = errors.New("tender URL cannot be empty")
)
