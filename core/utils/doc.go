// Package utils provides small helpers shared by the model and source packages,
// chiefly the normalization of record ids decoded from SQL rows, JSON bodies and
// bucket objects into one string form.
package utils
