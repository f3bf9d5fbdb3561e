package resolve

import "strconv"

// These mirror protoc's own formatting of a DefaultValue string: decimal,
// no thousands separators, shortest round-trippable float.
func itoa64(v int64) string  { return strconv.FormatInt(v, 10) }
func uitoa64(v uint64) string { return strconv.FormatUint(v, 10) }
func ftoa(v float64) string  { return strconv.FormatFloat(v, 'g', -1, 64) }
