package submitclaim

import _ "embed"

// CannedClaimID is the claim number carried by the canned success page.
const CannedClaimID = "W666666"

//go:embed mocks/reclamo_ok.html
var cannedSuccessBody string

//go:embed mocks/reclamo_activo.html
var cannedDuplicateBody string

// CannedSuccessBody is the recorded page returned by a successful submission.
func CannedSuccessBody() string {
	return cannedSuccessBody
}

// CannedDuplicateBody is the recorded page returned when a claim is already open.
func CannedDuplicateBody() string {
	return cannedDuplicateBody
}
