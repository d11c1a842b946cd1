package rentalstore

// Asset is a physical item that can be rented and returned.
type Asset struct {
	ID        string
	AssetType string
}

// Assets is an alias type for a slice of Asset.
type Assets = []Asset

// User is the holder of rentals.
type User struct {
	ID   string
	Name string
}

// Users is an alias type for a slice of User.
type Users = []User
