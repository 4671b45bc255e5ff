// Package listing defines the typed records that flow between pipeline
// stages and the validation that guards their boundaries.
//
// The aspect-ratio decision is made once, when a concept is approved, and is
// copied forward verbatim onto every downstream record — it is never
// re-derived from image content. [ValidateAspectRatio] is the single
// validation function invoked at each stage boundary; a missing or
// unrecognized value is a contract violation that aborts the run, because
// the print-size table and mockup template families have no default.
//
// For any completed run the aspect ratio recorded on the Concept,
// PromptRecord, GeneratedImage, and ListingRecord metadata is identical.
package listing
