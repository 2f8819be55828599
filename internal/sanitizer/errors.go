package sanitizer

// Both Repair and SanitizeMarkdown are total functions: DOM repair is pure
// tree surgery with no failure mode, and the line filter accepts any
// []byte and always produces output. Neither stage has a ClassifiedError
// of its own; metadata.Sink is consulted only by the stages around them
// (mdconvert, normalize, scheduler) that can actually fail.
