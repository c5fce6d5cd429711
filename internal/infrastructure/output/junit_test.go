package output

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJUnitFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJUnitFormatter(&buf).Format(createTestResult()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, xml.Header))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))

	assert.Equal(t, "breachgate", suites.Name)
	assert.Equal(t, 4, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	require.Len(t, suites.TestSuites, 1)

	suite := suites.TestSuites[0]
	assert.Equal(t, "lobby", suite.Name)
	assert.Equal(t, 1, suite.Skipped)
	require.Len(t, suite.TestCases, 4)

	pass := suite.TestCases[0]
	assert.Equal(t, "front-door", pass.Name)
	assert.Equal(t, "lobby", pass.ClassName)
	assert.Nil(t, pass.Failure)
	assert.Nil(t, pass.Error)
	assert.Nil(t, pass.Skipped)

	fail := suite.TestCases[1]
	require.NotNil(t, fail.Failure)
	assert.Equal(t, "1 expectation(s) not met", fail.Failure.Message)
	assert.Contains(t, fail.Failure.Content, "Device: cam-1")
	assert.Contains(t, fail.Failure.Content, "Before: alternate_breach")
	assert.Contains(t, fail.Failure.Content, "After: (none)")
	assert.Contains(t, fail.Failure.Content, "Mismatch: slot_opened")

	errCase := suite.TestCases[2]
	require.NotNil(t, errCase.Error)
	assert.Contains(t, errCase.Error.Message, "construct replacement breach")

	skipped := suite.TestCases[3]
	require.NotNil(t, skipped.Skipped)
	assert.Equal(t, "excluded by --tags filter", skipped.Skipped.Message)
}
