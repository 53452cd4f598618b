package models

import "fmt"

// ValidationError: input ของ operation ที่แก้ไขข้อมูลไม่ถูกต้อง (ไม่มีการเปลี่ยน state)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// FormatError: เอกสาร import รูปแบบผิด
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return "malformed document: " + e.Message }
