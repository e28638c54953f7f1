package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-backend/models"
)

// MongoGateway implements Gateway on a MongoDB database with one
// collection per remote table.
type MongoGateway struct {
	products  *mongo.Collection
	users     *mongo.Collection
	sales     *mongo.Collection
	purchases *mongo.Collection
}

func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{
		products:  db.Collection("products"),
		users:     db.Collection("users"),
		sales:     db.Collection("sales"),
		purchases: db.Collection("purchases"),
	}
}

// Remote documents keep the backend's underscore naming.

type productDoc struct {
	ID            string  `bson:"_id"`
	Code          string  `bson:"code,omitempty"`
	Name          string  `bson:"name"`
	Brand         string  `bson:"brand"`
	Category      string  `bson:"category"`
	Price         float64 `bson:"price"`
	Cost          float64 `bson:"cost"`
	Stock         int     `bson:"stock"`
	Description   string  `bson:"description"`
	Image         string  `bson:"image"`
	IsSale        bool    `bson:"is_sale"`
	DiscountPrice float64 `bson:"discount_price"`
}

type cartItemDoc struct {
	productDoc `bson:",inline"`
	Quantity   int `bson:"quantity"`
}

type saleDoc struct {
	ID            string        `bson:"_id"`
	UserID        string        `bson:"user_id,omitempty"`
	Items         []cartItemDoc `bson:"items"`
	Total         float64       `bson:"total"`
	Date          time.Time     `bson:"date"`
	PaymentMethod string        `bson:"payment_method"`
}

type purchaseItemDoc struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	Code      string  `bson:"code,omitempty"`
	Quantity  int     `bson:"quantity"`
	UnitCost  float64 `bson:"unit_cost"`
}

type purchaseDoc struct {
	ID       string            `bson:"_id"`
	Supplier string            `bson:"supplier"`
	Date     time.Time         `bson:"date"`
	Total    float64           `bson:"total"`
	Items    []purchaseItemDoc `bson:"items"`
}

type userDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Email       string    `bson:"email"`
	Password    string    `bson:"password"`
	Role        string    `bson:"role"`
	Permissions []string  `bson:"permissions,omitempty"`
	Wishlist    []string  `bson:"wishlist,omitempty"`
	DocumentID  string    `bson:"dni,omitempty"`
	Phone       string    `bson:"phone,omitempty"`
	Address     string    `bson:"address,omitempty"`
	City        string    `bson:"city,omitempty"`
	PostalCode  string    `bson:"zip_code,omitempty"`
	Country     string    `bson:"country,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toProductDoc(p models.Product) productDoc {
	return productDoc{
		ID: p.ID, Code: p.Code, Name: p.Name, Brand: p.Brand,
		Category: p.Category, Price: p.Price, Cost: p.Cost, Stock: p.Stock,
		Description: p.Description, Image: p.Image,
		IsSale: p.IsSale, DiscountPrice: p.DiscountPrice,
	}
}

func (d productDoc) toModel() models.Product {
	return models.Product{
		ID: d.ID, Code: d.Code, Name: d.Name, Brand: d.Brand,
		Category: d.Category, Price: d.Price, Cost: d.Cost, Stock: d.Stock,
		Description: d.Description, Image: d.Image,
		IsSale: d.IsSale, DiscountPrice: d.DiscountPrice,
	}
}

func (g *MongoGateway) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := g.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, nil
}

func (g *MongoGateway) InsertProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := g.products.InsertOne(ctx, toProductDoc(p)); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (g *MongoGateway) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) error {
	updates := bson.M{}
	if patch.Code != nil {
		updates["code"] = *patch.Code
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Brand != nil {
		updates["brand"] = *patch.Brand
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Cost != nil {
		updates["cost"] = *patch.Cost
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.IsSale != nil {
		updates["is_sale"] = *patch.IsSale
	}
	if patch.DiscountPrice != nil {
		updates["discount_price"] = *patch.DiscountPrice
	}
	if len(updates) == 0 {
		return nil
	}

	res, err := g.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *MongoGateway) DeleteProduct(ctx context.Context, id string) error {
	res, err := g.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func toUserDoc(u models.User) userDoc {
	return userDoc{
		ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password,
		Role: string(u.Role), Permissions: u.Permissions, Wishlist: u.Wishlist,
		DocumentID: u.DocumentID, Phone: u.Phone, Address: u.Address,
		City: u.City, PostalCode: u.PostalCode, Country: u.Country,
		CreatedAt: u.CreatedAt,
	}
}

func (d userDoc) toModel() models.User {
	return models.User{
		ID: d.ID, Name: d.Name, Email: d.Email, Password: d.Password,
		Role: models.Role(d.Role), Permissions: d.Permissions, Wishlist: d.Wishlist,
		DocumentID: d.DocumentID, Phone: d.Phone, Address: d.Address,
		City: d.City, PostalCode: d.PostalCode, Country: d.Country,
		CreatedAt: d.CreatedAt,
	}
}

func (g *MongoGateway) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := g.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

func (g *MongoGateway) InsertUser(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if _, err := g.users.InsertOne(ctx, toUserDoc(u)); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (g *MongoGateway) UpdateUser(ctx context.Context, id string, patch models.UserPatch) error {
	updates := bson.M{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Password != nil {
		updates["password"] = *patch.Password
	}
	if patch.Role != nil {
		updates["role"] = string(*patch.Role)
	}
	if patch.Permissions != nil {
		updates["permissions"] = *patch.Permissions
	}
	if patch.Wishlist != nil {
		updates["wishlist"] = *patch.Wishlist
	}
	if patch.DocumentID != nil {
		updates["dni"] = *patch.DocumentID
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.PostalCode != nil {
		updates["zip_code"] = *patch.PostalCode
	}
	if patch.Country != nil {
		updates["country"] = *patch.Country
	}
	if len(updates) == 0 {
		return nil
	}

	res, err := g.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *MongoGateway) DeleteUser(ctx context.Context, id string) error {
	res, err := g.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func toSaleDoc(s models.Sale) saleDoc {
	items := make([]cartItemDoc, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, cartItemDoc{productDoc: toProductDoc(it.Product), Quantity: it.Quantity})
	}
	return saleDoc{
		ID: s.ID, UserID: s.UserID, Items: items,
		Total: s.Total, Date: s.Date, PaymentMethod: string(s.PaymentMethod),
	}
}

func (d saleDoc) toModel() models.Sale {
	items := make([]models.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, models.CartItem{Product: it.productDoc.toModel(), Quantity: it.Quantity})
	}
	return models.Sale{
		ID: d.ID, UserID: d.UserID, Items: items,
		Total: d.Total, Date: d.Date, PaymentMethod: models.PaymentMethod(d.PaymentMethod),
	}
}

func (g *MongoGateway) ListSales(ctx context.Context) ([]models.Sale, error) {
	cursor, err := g.sales.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []saleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	sales := make([]models.Sale, 0, len(docs))
	for _, d := range docs {
		sales = append(sales, d.toModel())
	}
	return sales, nil
}

func (g *MongoGateway) InsertSale(ctx context.Context, s models.Sale) (models.Sale, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, err := g.sales.InsertOne(ctx, toSaleDoc(s)); err != nil {
		return models.Sale{}, err
	}
	return s, nil
}

func toPurchaseDoc(p models.Purchase) purchaseDoc {
	items := make([]purchaseItemDoc, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, purchaseItemDoc{
			ProductID: it.ProductID, Name: it.Name, Code: it.Code,
			Quantity: it.Quantity, UnitCost: it.UnitCost,
		})
	}
	return purchaseDoc{ID: p.ID, Supplier: p.Supplier, Date: p.Date, Total: p.Total, Items: items}
}

func (d purchaseDoc) toModel() models.Purchase {
	items := make([]models.PurchaseItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, models.PurchaseItem{
			ProductID: it.ProductID, Name: it.Name, Code: it.Code,
			Quantity: it.Quantity, UnitCost: it.UnitCost,
		})
	}
	return models.Purchase{ID: d.ID, Supplier: d.Supplier, Date: d.Date, Total: d.Total, Items: items}
}

func (g *MongoGateway) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	cursor, err := g.purchases.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []purchaseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	purchases := make([]models.Purchase, 0, len(docs))
	for _, d := range docs {
		purchases = append(purchases, d.toModel())
	}
	return purchases, nil
}

func (g *MongoGateway) InsertPurchase(ctx context.Context, p models.Purchase) (models.Purchase, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := g.purchases.InsertOne(ctx, toPurchaseDoc(p)); err != nil {
		return models.Purchase{}, err
	}
	return p, nil
}
