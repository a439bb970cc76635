package main

import (
	"testing"

	crcverify "github.com/doismellburning/crcverify/src"
	"github.com/stretchr/testify/assert"
)

func Test_CrcVerify(t *testing.T) {
	var status, stdout, _ = crcverify.RunMain(t, "crcverify", []string{"--text-color=0", "--quiet"}, nil)

	assert.Equal(t, 0, status)
	crcverify.AssertOutputContains(t, stdout, "test result: ok. 840 passed; 0 failed")
}

func Test_CrcVerifyInjectedFault(t *testing.T) {
	var status, stdout, _ = crcverify.RunMain(t, "crcverify", []string{"--text-color=0", "--quiet", "--inject-fault=0x1"}, nil)

	assert.Equal(t, 1, status)
	crcverify.AssertOutputContains(t, stdout, "test result: FAILED. 0 passed; 840 failed")
}
