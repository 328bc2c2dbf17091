// repositories/account_directory.go
package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SuparBat/CampusConnect/models"
)

var (
	// ErrNotFound is returned when no account matches the email
	ErrNotFound = errors.New("account not found")
	// ErrDuplicate is returned when an account with the email already exists
	ErrDuplicate = errors.New("account already exists")
	// ErrUnknownRole is returned for a role outside student/company/admin
	ErrUnknownRole = errors.New("unknown role")
)

// AccountDirectory is the narrow persistence interface the auth flows
// consume. One directory exists per role; they never overlap.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// MongoAccountDirectory backs an AccountDirectory with one MongoDB
// collection.
type MongoAccountDirectory struct {
	collection *mongo.Collection
}

// NewMongoAccountDirectory creates a directory over the named collection
func NewMongoAccountDirectory(db *mongo.Database, collectionName string) *MongoAccountDirectory {
	return &MongoAccountDirectory{collection: db.Collection(collectionName)}
}

func (d *MongoAccountDirectory) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := d.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (d *MongoAccountDirectory) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	now := time.Now()
	account.ID = primitive.NewObjectID()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := d.collection.InsertOne(ctx, account)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (d *MongoAccountDirectory) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result, err := d.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Directories bundles the three role-partitioned account directories
type Directories struct {
	Student AccountDirectory
	Company AccountDirectory
	Admin   AccountDirectory
}

// NewDirectories creates mongo-backed directories over the role
// collections.
func NewDirectories(db *mongo.Database) *Directories {
	return &Directories{
		Student: NewMongoAccountDirectory(db, "students"),
		Company: NewMongoAccountDirectory(db, "companies"),
		Admin:   NewMongoAccountDirectory(db, "admins"),
	}
}

// ForRole selects the directory for a role discriminator
func (d *Directories) ForRole(role string) (AccountDirectory, error) {
	switch role {
	case models.RoleStudent:
		return d.Student, nil
	case models.RoleCompany:
		return d.Company, nil
	case models.RoleAdmin:
		return d.Admin, nil
	default:
		return nil, ErrUnknownRole
	}
}
