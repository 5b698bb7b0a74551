package common

// PageId identifies one page of a frame store. Valid identifiers run
// over [0, store capacity).
type PageId int

const InvalidPageId = PageId(-1)
