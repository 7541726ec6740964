// Package validation holds the issue/result types shared by value validation
// and the field settings linter.
package validation
