package query

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/database/mongoclient"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "testdb"
)

type dummy struct {
	Dummy  string `bson:"dummy"`
	Update string `bson:"updatekey"`
}

type querySuite struct {
	suite.Suite
	im *impl
}

func (q *querySuite) SetupTest() {
	q.im = New(mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:                os.Getenv("TEST_MONGO_URI"),
		AuthDBName:         "admin",
		DBName:             dbName,
		PoolSizeMultiplier: 1,
	}), nil, false).(*impl)
	q.Require().NoError(q.im.coll(mockTable).Drop(mockCTX))
}

func (q *querySuite) TestUpsertAndFindOne() {
	q.Require().NoError(q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "a"}, dummy{"a", "1"}))
	q.Require().NoError(q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "a"}, dummy{"a", "2"}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "a"}, &res))
	q.Equal(dummy{"a", "2"}, res)

	n, err := q.im.Count(mockCTX, mockTable, bson.M{})
	q.Require().NoError(err)
	q.Equal(1, n)

	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "b"}, &res))
}

func (q *querySuite) TestInsertDuplicateKey() {
	q.Require().NoError(q.im.EnsureIndexes(mockCTX, Index{
		Table:  mockTable,
		Keys:   bson.D{{Key: "dummy", Value: 1}},
		Unique: true,
	}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{"a", "1"}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{"a", "2"}))
}

func (q *querySuite) TestSearchAndRemove() {
	for _, d := range []dummy{{"a", "3"}, {"b", "1"}, {"c", "2"}} {
		q.Require().NoError(q.im.Insert(mockCTX, mockTable, d))
	}

	res := []dummy{}
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 0, 2, "-updatekey", bson.M{}, &res))
	q.Equal([]dummy{{"a", "3"}, {"c", "2"}}, res)

	q.Require().NoError(q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))
	q.Equal(ErrNotFound, q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))
}

func TestQuerySuite(t *testing.T) {
	if os.Getenv("TEST_MONGO_URI") == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	suite.Run(t, new(querySuite))
}
