// Package basesvc - Test UpdateOne và các helper dựng update qua mock deployment của driver.
package basesvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/JoWinner/novu/internal/common"
)

// testDocument là model tối giản cho test base service
type testDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	OwnerEnvironmentID primitive.ObjectID `bson:"ownerEnvironmentId,omitempty"`
	Deleted            bool               `bson:"deleted"`
	Seen               bool               `bson:"seen"`
}

func TestDocumentIDFilter(t *testing.T) {
	id := primitive.NewObjectID()

	filter := DocumentIDFilter(testDocument{ID: id})
	assert.Equal(t, bson.M{"_id": id}, filter, "phải dựng filter theo _id của document")

	filter = DocumentIDFilter(&testDocument{ID: id})
	assert.Equal(t, bson.M{"_id": id}, filter, "pointer đến document cũng phải dùng được")

	assert.Nil(t, DocumentIDFilter(nil))
	assert.Nil(t, DocumentIDFilter((*testDocument)(nil)))
	assert.Nil(t, DocumentIDFilter(testDocument{}), "ID zero không dựng được filter")
	assert.Nil(t, DocumentIDFilter("not a struct"))
	assert.Nil(t, DocumentIDFilter(struct{ Name string }{Name: "x"}), "struct không có ID trả về nil")
}

// TestUpdateOne_DocLaiTheoId kiểm tra UpdateOne đọc lại document theo _id
// chứ không theo filter gốc: filter deleted:false không còn khớp sau khi
// set deleted:true, nhưng xóa mềm vẫn phải thành công.
func TestUpdateOne_DocLaiTheoId(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("xóa mềm với filter deleted:false", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[testDocument](mt.Coll)
		id := primitive.NewObjectID()
		envID := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			// Pre-check: document tồn tại, chưa xóa
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "ownerEnvironmentId", Value: envID},
				{Key: "deleted", Value: false},
			}),
			// Update: khớp và sửa 1 document
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			// Đọc lại: document đã mang deleted:true
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "ownerEnvironmentId", Value: envID},
				{Key: "deleted", Value: true},
			}),
		)

		filter := bson.M{"_id": id, "ownerEnvironmentId": envID, "deleted": false}
		update := bson.M{"$set": bson.M{"deleted": true}}
		updated, err := svc.UpdateOne(context.Background(), filter, update, nil)
		require.NoError(mt, err, "xóa mềm thành công không được trả về lỗi")
		assert.True(mt, updated.Deleted, "document trả về phải mang trạng thái sau update")

		// Lệnh find cuối cùng (đọc lại) phải filter theo _id, không mang deleted:false
		var refetch bson.Raw
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "find" {
				refetch = evt.Command.Lookup("filter").Document()
			}
		}
		require.NotNil(mt, refetch, "phải có lệnh find đọc lại sau update")

		gotID, ok := refetch.Lookup("_id").ObjectIDOK()
		require.True(mt, ok, "filter đọc lại phải chứa _id")
		assert.Equal(mt, id, gotID)
		_, err = refetch.LookupErr("deleted")
		assert.Error(mt, err, "filter đọc lại không được mang điều kiện deleted của filter gốc")
	})
}

// TestUpdateOne_KhongDoiVanThanhCong kiểm tra update khớp document nhưng không
// đổi dữ liệu (nModified = 0) vẫn là thành công - gọi đánh dấu đã đọc hai lần
// liên tiếp không được trả về 404.
func TestUpdateOne_KhongDoiVanThanhCong(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update lặp lại cùng giá trị", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[testDocument](mt.Coll)
		id := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		doc := bson.D{
			{Key: "_id", Value: id},
			{Key: "seen", Value: true},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, doc),
			// Khớp 1 document nhưng giá trị không đổi
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, doc),
		)

		updated, err := svc.UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{"seen": true}}, nil)
		require.NoError(mt, err, "update không đổi dữ liệu vẫn phải thành công")
		assert.True(mt, updated.Seen)
	})
}

// TestUpdateOne_KhongTonTai kiểm tra document không tồn tại trả về ErrNotFound
func TestUpdateOne_KhongTonTai(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update document không tồn tại", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[testDocument](mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		// Pre-check không tìm thấy document nào
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := svc.UpdateOne(context.Background(), bson.M{"_id": primitive.NewObjectID()}, bson.M{"$set": bson.M{"seen": true}}, nil)
		assert.Equal(mt, common.ErrNotFound, err, "document không tồn tại phải trả về ErrNotFound")
	})
}
