package webhook

import "github.com/stretchr/testify/mock"

// MatchResponse creates a custom matcher for response arguments in mocks
func MatchResponse(matcher func(Response) bool) interface{} {
	return mock.MatchedBy(matcher)
}
