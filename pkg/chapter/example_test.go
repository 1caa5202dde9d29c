package chapter_test

import (
	"fmt"

	"github.com/walteh/proserc/pkg/chapter"
)

func ExampleSplit() {
	input := "Chapter 7\nThe rain began.\nNobody came home.\nMorning arrived late."

	result, err := chapter.Split(input, 3)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, part := range result.Parts {
		fmt.Printf("%s (%d words)\n", part.Header, part.WordCount)
	}

	// Output:
	// Chapter 7.1 (5 words)
	// Chapter 7.2 (5 words)
	// Chapter 7.3 (5 words)
}
