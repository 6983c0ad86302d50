// Package httpsource serves model records from a remote REST API.
//
// A batch fetch is one `GET {base_url}/{Type}?id__in=1,2,3` request made with the
// fiber HTTP client. The endpoint must answer with a JSON array of records.
package httpsource
