package utils

import "fmt"

// ToStringSlice renders every element of slice with fmt.Sprint. nil elements become "".
func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0, len(slice))
	for _, v := range slice {
		switch s := v.(type) {
		case string:
			stringSlice = append(stringSlice, s)
		case nil:
			stringSlice = append(stringSlice, "")
		default:
			stringSlice = append(stringSlice, fmt.Sprint(s))
		}
	}
	return stringSlice
}
