package service

// Database path - variable to allow testing with different paths.
var dbPath = "data/badger"
