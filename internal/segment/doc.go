// Package segment splits Markdown documents into heading-delimited fragments.
// Fragments are the unit of translation: each one is sent to the chat service
// on its own and the results are reassembled in source order.
package segment
