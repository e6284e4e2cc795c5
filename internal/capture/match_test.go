// SPDX-License-Identifier: MIT
package capture_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skaphos/testapp/internal/capture"
)

const expected = "Hello from testapp!"

var _ = Describe("Match", func() {
	DescribeTable("accepts output that trims to the expected text",
		func(written string) {
			out, err := capture.RunAndMatch(func() { fmt.Print(written) }, expected)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Stdout).To(Equal(written))
		},
		Entry("single newline", "Hello from testapp!\n"),
		Entry("extra trailing newlines", "Hello from testapp!\n\n\n"),
		Entry("trailing spaces", "Hello from testapp!   "),
		Entry("leading whitespace", "\t Hello from testapp!\n"),
	)

	DescribeTable("rejects any other deviation",
		func(written string) {
			_, err := capture.RunAndMatch(func() { fmt.Print(written) }, expected)
			var mismatch *capture.MismatchError
			Expect(errors.As(err, &mismatch)).To(BeTrue())
			Expect(mismatch.Expected).To(Equal(expected))
		},
		Entry("wrong case", "hello from testapp!\n"),
		Entry("extra punctuation", "Hello from testapp!!\n"),
		Entry("missing punctuation", "Hello from testapp\n"),
		Entry("nothing written", ""),
	)

	It("reports expected and actual text", func() {
		err := capture.Match(expected, capture.Output{Stdout: "hello from testapp!\n"})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring(`expected "Hello from testapp!"`))
		Expect(err.Error()).To(ContainSubstring(`got "hello from testapp!"`))
	})

	It("ignores stderr", func() {
		err := capture.Match(expected, capture.Output{Stdout: expected + "\n", Stderr: "noise"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("produces the same trimmed output for independent captures", func() {
		routine := func() { fmt.Println(expected) }
		first, err := capture.Run(routine)
		Expect(err).NotTo(HaveOccurred())
		second, err := capture.Run(routine)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.TrimmedStdout()).To(Equal(first.TrimmedStdout()))
	})
})
