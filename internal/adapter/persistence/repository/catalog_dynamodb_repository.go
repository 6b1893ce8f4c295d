package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/infrastructure/database"
	"repair_pricing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	batchGetLimit       = 100
	maxBatchGetAttempts = 5
)

var ErrUnprocessedKeys = errors.New("dynamodb batch get left unprocessed keys")

// CatalogTables names the DynamoDB tables backing the catalog.
type CatalogTables struct {
	Prices       string
	DeviceModels string
	RepairTypes  string
}

type priceItem struct {
	PriceKey        string   `dynamodbav:"price_key"`
	PartQuality     string   `dynamodbav:"part_quality"`
	DeviceModelID   uint     `dynamodbav:"device_model_id"`
	RepairTypeID    uint     `dynamodbav:"repair_type_id"`
	PartsCost       string   `dynamodbav:"parts_cost,omitempty"`
	LaborCost       string   `dynamodbav:"labor_cost,omitempty"`
	TotalPrice      string   `dynamodbav:"total_price"`
	IsEstimated     bool     `dynamodbav:"is_estimated"`
	ConfidenceScore *float64 `dynamodbav:"confidence_score,omitempty"`
	CreatedAt       string   `dynamodbav:"created_at"`
	UpdatedAt       string   `dynamodbav:"updated_at"`
}

type deviceModelItem struct {
	ID           uint   `dynamodbav:"id"`
	BrandID      uint   `dynamodbav:"brand_id"`
	BrandName    string `dynamodbav:"brand_name"`
	BrandPrimary bool   `dynamodbav:"brand_primary"`
	Name         string `dynamodbav:"name"`
	TierLevel    int    `dynamodbav:"tier_level"`
	ReleaseYear  int    `dynamodbav:"release_year"`
	ReleaseMonth int    `dynamodbav:"release_month,omitempty"`
	Category     string `dynamodbav:"category"`
	Active       bool   `dynamodbav:"active"`
}

type repairTypeItem struct {
	ID               uint     `dynamodbav:"id"`
	Name             string   `dynamodbav:"name"`
	ComplexityWeight *float64 `dynamodbav:"complexity_weight,omitempty"`
}

// CatalogDynamoRepository reads the catalog from DynamoDB and writes estimated prices.
//
// Table requirements:
//   - prices: PK price_key (string "<deviceModelId>#<repairTypeId>"), SK part_quality (string)
//   - device_models: PK id (number), brand denormalized into each item
//   - repair_types: PK id (number)
//
// Keying prices by device/repair pair lets one Query return every quality tier.

type CatalogDynamoRepository struct {
	ddb    database.DynamoDBAPI
	tables CatalogTables
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb database.DynamoDBAPI, tables CatalogTables) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{ddb: ddb, tables: tables}
}

func pricePartitionKey(deviceModelID, repairTypeID uint) string {
	return uintToString(deviceModelID) + "#" + uintToString(repairTypeID)
}

func priceItemKey(key entities.PriceKey) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"price_key":    &types.AttributeValueMemberS{Value: pricePartitionKey(key.DeviceModelID, key.RepairTypeID)},
		"part_quality": &types.AttributeValueMemberS{Value: string(key.PartQuality)},
	}
}

func idKey(id uint) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: uintToString(id)},
	}
}

func (r *CatalogDynamoRepository) GetDeviceModel(ctx context.Context, id uint) (entities.DeviceModel, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.DeviceModels),
		Key:       idKey(id),
	})
	if err != nil {
		return entities.DeviceModel{}, err
	}
	if len(out.Item) == 0 {
		return entities.DeviceModel{}, nil
	}

	var it deviceModelItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.DeviceModel{}, err
	}
	return fromDeviceModelItem(it), nil
}

func (r *CatalogDynamoRepository) GetRepairType(ctx context.Context, id uint) (entities.RepairType, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.RepairTypes),
		Key:       idKey(id),
	})
	if err != nil {
		return entities.RepairType{}, err
	}
	if len(out.Item) == 0 {
		return entities.RepairType{}, nil
	}

	var it repairTypeItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.RepairType{}, err
	}
	return entities.RepairType{ID: it.ID, Name: it.Name, ComplexityWeight: it.ComplexityWeight}, nil
}

func (r *CatalogDynamoRepository) GetExactPrice(ctx context.Context, key entities.PriceKey) (entities.Price, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Prices),
		Key:            priceItemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Price{}, err
	}
	if len(out.Item) == 0 {
		return entities.Price{}, nil
	}
	return unmarshalPrice(out.Item)
}

func (r *CatalogDynamoRepository) ListPricesForDeviceAcrossQualities(ctx context.Context, deviceModelID, repairTypeID uint) ([]entities.Price, error) {
	var (
		out       []entities.Price
		startFrom map[string]types.AttributeValue
	)
	for {
		page, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tables.Prices),
			KeyConditionExpression: aws.String("#pk = :pk"),
			ExpressionAttributeNames: map[string]string{
				"#pk": "price_key",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: pricePartitionKey(deviceModelID, repairTypeID)},
			},
			ExclusiveStartKey: startFrom,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			p, err := unmarshalPrice(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		startFrom = page.LastEvaluatedKey
	}
}

// ListDeviceModelsByCategory scans the device_models table. Inactive models are included.
func (r *CatalogDynamoRepository) ListDeviceModelsByCategory(ctx context.Context, category entities.DeviceCategory) ([]entities.DeviceModel, error) {
	var (
		out       []entities.DeviceModel
		startFrom map[string]types.AttributeValue
	)
	for {
		page, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tables.DeviceModels),
			FilterExpression: aws.String("#category = :category"),
			ExpressionAttributeNames: map[string]string{
				"#category": "category",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":category": &types.AttributeValueMemberS{Value: string(category)},
			},
			ExclusiveStartKey: startFrom,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			var it deviceModelItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			out = append(out, fromDeviceModelItem(it))
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		startFrom = page.LastEvaluatedKey
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CatalogDynamoRepository) ListPricesForModelsAndRepair(ctx context.Context, deviceModelIDs []uint, repairTypeID uint, quality entities.PartQuality) ([]entities.Price, error) {
	seen := make(map[uint]bool, len(deviceModelIDs))
	keys := make([]map[string]types.AttributeValue, 0, len(deviceModelIDs))
	for _, id := range deviceModelIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, priceItemKey(entities.PriceKey{DeviceModelID: id, RepairTypeID: repairTypeID, PartQuality: quality}))
	}

	var out []entities.Price
	for start := 0; start < len(keys); start += batchGetLimit {
		end := start + batchGetLimit
		if end > len(keys) {
			end = len(keys)
		}
		items, err := r.batchGet(ctx, keys[start:end])
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			p, err := unmarshalPrice(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key.DeviceModelID < out[j].Key.DeviceModelID })
	return out, nil
}

func (r *CatalogDynamoRepository) batchGet(ctx context.Context, keys []map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	pending := map[string]types.KeysAndAttributes{
		r.tables.Prices: {Keys: keys, ConsistentRead: aws.Bool(true)},
	}

	for attempt := 0; len(pending) > 0; attempt++ {
		if attempt == maxBatchGetAttempts {
			return nil, ErrUnprocessedKeys
		}
		out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Responses[r.tables.Prices]...)
		pending = out.UnprocessedKeys
	}
	return items, nil
}

// updatedPriceAttributes are rewritten on every upsert; the ones missing from the
// marshalled item (nil breakdown, nil confidence) are removed.
var updatedPriceAttributes = []string{
	"device_model_id",
	"repair_type_id",
	"total_price",
	"is_estimated",
	"parts_cost",
	"labor_cost",
	"confidence_score",
}

// UpsertEstimatedPrice writes the estimate with a single conditional UpdateItem: the item
// must be absent or still estimated. created_at is kept from the first write.
func (r *CatalogDynamoRepository) UpsertEstimatedPrice(ctx context.Context, p entities.Price) (entities.Price, bool, error) {
	item := toPriceItem(p)
	item.IsEstimated = true
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Price{}, false, fmt.Errorf("failed to marshal estimated price %s: %w", p.Key, err)
	}

	sets := []string{
		"#updated_at = :now",
		"#created_at = if_not_exists(#created_at, :now)",
	}
	var removes []string
	values := map[string]types.AttributeValue{
		":now":  av["updated_at"],
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}
	names := map[string]string{
		"#updated_at": "updated_at",
		"#created_at": "created_at",
	}
	for _, attr := range updatedPriceAttributes {
		name := "#" + attr
		names[name] = attr
		v, ok := av[attr]
		if !ok {
			removes = append(removes, name)
			continue
		}
		sets = append(sets, name+" = :"+attr)
		values[":"+attr] = v
	}

	updateExpr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		updateExpr += " REMOVE " + strings.Join(removes, ", ")
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tables.Prices),
		Key:                                 priceItemKey(p.Key),
		UpdateExpression:                    aws.String(updateExpr),
		ConditionExpression:                 aws.String("attribute_not_exists(#pk) OR #is_estimated = :true"),
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#pk": "price_key"}),
		ExpressionAttributeValues:           values,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if !errors.As(err, &cfe) {
			return entities.Price{}, false, err
		}
		if len(cfe.Item) > 0 {
			existing, err := unmarshalPrice(cfe.Item)
			return existing, false, err
		}
		existing, err := r.GetExactPrice(ctx, p.Key)
		return existing, false, err
	}
	if len(out.Attributes) == 0 {
		return entities.Price{}, false, fmt.Errorf("update of %s returned no attributes", p.Key)
	}

	stored, err := unmarshalPrice(out.Attributes)
	if err != nil {
		return entities.Price{}, false, err
	}
	return stored, true, nil
}

func unmarshalPrice(item map[string]types.AttributeValue) (entities.Price, error) {
	var it priceItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Price{}, err
	}
	return fromPriceItem(it), nil
}

func toPriceItem(p entities.Price) priceItem {
	return priceItem{
		PriceKey:        pricePartitionKey(p.Key.DeviceModelID, p.Key.RepairTypeID),
		PartQuality:     string(p.Key.PartQuality),
		DeviceModelID:   p.Key.DeviceModelID,
		RepairTypeID:    p.Key.RepairTypeID,
		PartsCost:       nullDecimalToString(p.PartsCost),
		LaborCost:       nullDecimalToString(p.LaborCost),
		TotalPrice:      decimalToString(p.TotalPrice),
		IsEstimated:     p.IsEstimated,
		ConfidenceScore: p.ConfidenceScore,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func fromPriceItem(it priceItem) entities.Price {
	return entities.Price{
		Key: entities.PriceKey{
			DeviceModelID: it.DeviceModelID,
			RepairTypeID:  it.RepairTypeID,
			PartQuality:   entities.PartQuality(it.PartQuality),
		},
		PartsCost:       parseNullDecimal(it.PartsCost),
		LaborCost:       parseNullDecimal(it.LaborCost),
		TotalPrice:      parseDecimal(it.TotalPrice),
		IsEstimated:     it.IsEstimated,
		ConfidenceScore: it.ConfidenceScore,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}

func fromDeviceModelItem(it deviceModelItem) entities.DeviceModel {
	return entities.DeviceModel{
		ID:           it.ID,
		Brand:        entities.Brand{ID: it.BrandID, Name: it.BrandName, Primary: it.BrandPrimary},
		Name:         it.Name,
		TierLevel:    it.TierLevel,
		ReleaseYear:  it.ReleaseYear,
		ReleaseMonth: it.ReleaseMonth,
		Category:     entities.DeviceCategory(it.Category),
		Active:       it.Active,
	}
}
