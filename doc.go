// Package p2c translates a small Python-like language into C.
//
// The output is three-address code: every intermediate result gets its own
// temporary and all control flow is lowered to labels and gotos, wrapped in
// a main function.
//
// # Quick Start
//
// For one-off translation:
//
//	out, err := p2c.Translate("for i in range(10, 20, 2): { a += i }", nil)
//
// With configuration:
//
//	out, err := p2c.Translate(src, &p2c.Config{
//	    NumericType: "double",
//	    Filename:    "prog.py",
//	})
//
// # The Language
//
// A program is a sequence of statements. Newlines are not significant;
// statements may be separated by ';'. Blocks follow a colon and are
// enclosed in braces:
//
//	a = 0
//	for i in range(10): {
//	    if i % 2 == 0: { continue } elif i > 7: { break } else: { a += i }
//	}
//	while (a > 0) and not done: { a -= 1 }
//
// Every variable has the configured numeric type and is declared at its
// first assignment. True and False are 1 and 0. Comparisons and logical
// operators do not chain: write (a < b) and (b < c). Integer literals may
// not start with 0 (write 8, not 010). A variable named after a C keyword
// produces a warning.
//
// # Inspecting a Translation
//
// [Compile] returns a [Program] that exposes the parse tree ([Program.AST]),
// the instruction listing ([Program.Disassemble]) and non-fatal
// diagnostics ([Program.Warnings]) alongside the C text.
//
// # Running a Translation
//
// [Program.Run] executes the generated instructions directly, with the
// arithmetic of the configured numeric type, and reports the final value
// of every variable:
//
//	prog := p2c.MustCompile("sum = 0\nfor i in range(n): { sum += i }")
//	res, err := prog.Run(ctx, &p2c.RunConfig{Inputs: map[string]float64{"n": 10}})
//	fmt.Print(res) // "sum = 45\ni = 10\n"
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [SyntaxError]: the source does not parse; the first error aborts
//   - [LoweringError]: the program parses but cannot be translated,
//     e.g. break outside a loop
//   - [ConfigError]: a Config field would produce malformed C
//   - [RuntimeError]: a run hit undefined behavior or its step limit
//
// A failed translation never yields partial output.
//
// # Thread Safety
//
// Each call to [Compile] uses its own generator state, so translations may
// run concurrently. A [Program] is immutable.
package p2c
