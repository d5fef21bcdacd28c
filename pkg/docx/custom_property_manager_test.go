package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allanpk716/docform/internal/testutil"
)

// TestCustomPropertyManager_Parse 测试解析自定义属性
func TestCustomPropertyManager_Parse(t *testing.T) {
	// 空内容得到空属性集
	empty, err := ParseCustomProperties(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Names())

	props, err := ParseCustomProperties([]byte(testutil.CustomXML(map[string]string{
		"Creator":  "测试作者",
		"Reviewer": "R",
	})))
	require.NoError(t, err)
	assert.Equal(t, []string{"Creator", "Reviewer"}, props.Names())

	value, ok := props.GetValue("Creator")
	assert.True(t, ok)
	assert.Equal(t, "测试作者", value)

	_, ok = props.GetValue("Missing")
	assert.False(t, ok)

	_, err = ParseCustomProperties([]byte("<Properties"))
	assert.Error(t, err)
}

// TestCustomPropertyManager_SetAndRemove 测试新增、更新与删除
func TestCustomPropertyManager_SetAndRemove(t *testing.T) {
	props, err := ParseCustomProperties([]byte(testutil.CustomXML(map[string]string{"A": "1"})))
	require.NoError(t, err)

	props.SetValue("B", "2")
	props.SetValue("A", "updated")

	data, err := props.Bytes()
	require.NoError(t, err)

	reparsed, err := ParseCustomProperties(data)
	require.NoError(t, err)

	a, _ := reparsed.GetValue("A")
	b, _ := reparsed.GetValue("B")
	assert.Equal(t, "updated", a)
	assert.Equal(t, "2", b)

	assert.Contains(t, string(data), `pid="3"`, "新属性使用下一个可用 PID")
	assert.Contains(t, string(data), customPropertyFmtID)

	assert.True(t, reparsed.Remove("A"))
	assert.False(t, reparsed.Remove("A"))
	assert.Equal(t, []string{"B"}, reparsed.Names())

	reparsed.SetValue("C", " spaced\n")
	data, err = reparsed.Bytes()
	require.NoError(t, err)
	reparsed, err = ParseCustomProperties(data)
	require.NoError(t, err)
	c, _ := reparsed.GetValue("C")
	assert.Equal(t, " spaced\n", c, "取值不做裁剪")
}

// TestCustomPropertyManager_GetNextPID PID 从 2 开始
func TestCustomPropertyManager_GetNextPID(t *testing.T) {
	props, err := ParseCustomProperties(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, props.getNextPID())

	props.SetValue("X", "x")
	assert.Equal(t, 3, props.getNextPID())
}

func TestPackage_SetCustomPropertiesCreatesPart(t *testing.T) {
	path := testutil.WriteDocx(t, t.TempDir(), "custom.docx", testutil.DocxFixture{Body: testutil.TextPara("x")})

	pkg, err := OpenPackage(path)
	require.NoError(t, err)

	props, err := pkg.CustomProperties()
	require.NoError(t, err)
	props.SetValue(CreatorPropertyName, "someone")
	require.NoError(t, pkg.SetCustomProperties(props))

	reopened := reopen(t, pkg)
	assert.True(t, reopened.HasPart(CustomPropsPart))
	core, err := reopened.CoreProperties()
	require.NoError(t, err)
	assert.Equal(t, "someone", core.Creator)
}
